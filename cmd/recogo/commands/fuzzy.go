// Copyright 2026 Recogo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recogo/recogo/pkg/pattern"
)

func newFuzzyCommand() *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:   "fuzzy <reference> [text...]",
		Short: "Score inputs against a reference string by edit-distance similarity",
		Long: `Fuzzy compares each input against the reference string using Levenshtein
similarity and reports the inputs that meet the threshold. The threshold
defaults to fuzzy.threshold from the configuration.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("threshold") {
				threshold = rt.cfg.Fuzzy.Threshold
			}

			reference := args[0]
			inputs, err := collectInputs(cmd, args[1:], "")
			if err != nil {
				return err
			}

			matcher := pattern.NewFuzzyMatcher(reference, fmt.Sprintf("similar to %q", reference), threshold)

			matched := 0
			rows := make([][]string, 0, len(inputs))
			for _, input := range inputs {
				res, err := matcher.Matches(input)
				if err != nil {
					return err
				}
				status := "-"
				if res.Matched {
					status = "match"
					matched++
				}
				rows = append(rows, []string{input, fmt.Sprintf("%.3f", pattern.Similarity(reference, input)), status})
			}

			if rt.cfg.Output.Format == "json" {
				type jsonRow struct {
					Input      string  `json:"input"`
					Similarity float64 `json:"similarity"`
					Matched    bool    `json:"matched"`
				}
				out := make([]jsonRow, 0, len(inputs))
				for _, input := range inputs {
					sim := pattern.Similarity(reference, input)
					out = append(out, jsonRow{Input: input, Similarity: sim, Matched: sim >= threshold})
				}
				return rt.formatter.PrintJSON(out)
			}

			if err := rt.formatter.PrintTable([]string{"input", "similarity", "status"}, rows); err != nil {
				return err
			}
			return rt.formatter.PrintSummary(fmt.Sprintf("%d of %d input(s) within threshold %.3f", matched, len(inputs), threshold))
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", 0, "similarity threshold in [0,1] (overrides config)")

	return cmd
}
