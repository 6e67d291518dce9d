// Copyright 2026 Recogo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newDBCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Inspect fingerprint catalogs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newDBListCommand())

	return cmd
}

func newDBListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List loaded fingerprints in declaration order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := loadDatabases(rt.cfg.Database.Paths)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, db.Len())
			for i, fp := range db.Fingerprints {
				rows = append(rows, []string{
					strconv.Itoa(i),
					fp.Description,
					fp.Pattern(),
					strconv.Itoa(len(fp.Params)),
					strconv.Itoa(len(fp.Examples)),
				})
			}

			if err := rt.formatter.PrintTable([]string{"index", "description", "pattern", "params", "examples"}, rows); err != nil {
				return err
			}
			return rt.formatter.PrintSummary(fmt.Sprintf("%d fingerprint(s)", db.Len()))
		},
	}
}
