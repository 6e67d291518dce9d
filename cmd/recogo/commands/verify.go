// Copyright 2026 Recogo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/recogo/recogo/pkg/fingerprint"
)

func newVerifyCommand() *cobra.Command {
	var detailed bool

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify fingerprint examples against their own patterns",
		Long: `Verify runs every example in the configured catalogs through its own
fingerprint and compares the extracted parameters against the example's
expected values. The command exits non-zero when any example fails.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := loadDatabases(rt.cfg.Database.Paths)
			if err != nil {
				return err
			}

			report := fingerprint.Validate(db)

			if rt.cfg.Output.Format == "json" {
				if err := rt.formatter.PrintJSON(report); err != nil {
					return err
				}
			} else if err := printReport(report, detailed); err != nil {
				return err
			}

			if !report.OK() {
				return fmt.Errorf("%d example(s) failed verification", report.Failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&detailed, "detailed", false, "show per-example results, including passes")

	return cmd
}

func printReport(report *fingerprint.Report, detailed bool) error {
	var rows [][]string
	for _, fp := range report.Fingerprints {
		for _, ex := range fp.Examples {
			if ex.Passed && !detailed {
				continue
			}
			status := "pass"
			detail := strings.Join(ex.Warnings, "; ")
			if !ex.Passed {
				status = "FAIL"
				detail = strings.Join(ex.Failures, "; ")
			}
			rows = append(rows, []string{fp.Description, status, ex.Value, detail})
		}
	}

	if len(rows) > 0 {
		if err := rt.formatter.PrintTable([]string{"fingerprint", "status", "example", "detail"}, rows); err != nil {
			return err
		}
	}

	return rt.formatter.PrintSummary(fmt.Sprintf("verified %d example(s): %d passed, %d failed (run %s)",
		report.Passed+report.Failed, report.Passed, report.Failed, report.RunID))
}
