// Copyright 2026 Recogo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/recogo/recogo/pkg/fingerprint"
)

func newMatchCommand() *cobra.Command {
	var (
		inputFile string
		useBase64 bool
		bestOnly  bool
		watch     bool
	)

	cmd := &cobra.Command{
		Use:   "match [text...]",
		Short: "Match input text against the fingerprint database",
		Long: `Match evaluates each input against every fingerprint in the configured
catalogs and prints the matches with their extracted parameters.

Inputs are taken from arguments, from --file (one input per line), or from
stdin when neither is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := loadDatabases(rt.cfg.Database.Paths)
			if err != nil {
				return err
			}

			session := &matchSession{
				matcher:   fingerprint.NewMatcher(db),
				runID:     uuid.NewString(),
				useBase64: useBase64,
				bestOnly:  bestOnly,
			}

			tw, err := fingerprint.NewTelemetryWriter(rt.cfg.Telemetry.Path)
			if err != nil {
				return err
			}
			defer tw.Close()
			session.telemetry = tw

			if watch {
				if len(rt.cfg.Database.Paths) == 1 {
					stop, werr := session.startWatcher(cmd.Context(), rt.cfg.Database.Paths[0])
					if werr != nil {
						return werr
					}
					defer stop()
				} else {
					log.Warn().Int("catalogs", len(rt.cfg.Database.Paths)).
						Msg("watch requires exactly one catalog; hot reload disabled")
				}
			}

			inputs, err := collectInputs(cmd, args, inputFile)
			if err != nil {
				return err
			}

			return session.run(inputs)
		},
	}

	cmd.Flags().StringVar(&inputFile, "file", "", "read inputs from file, one per line")
	cmd.Flags().BoolVar(&useBase64, "base64", false, "base64-decode each input before matching")
	cmd.Flags().BoolVar(&bestOnly, "best", false, "report only the first match per input")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload the catalog when it changes (single catalog only)")
	// The dotted name maps straight onto the telemetry.path config key;
	// a flat "telemetry" flag would shadow the whole config section.
	cmd.Flags().String("telemetry.path", "", "append match events to this JSONL file")

	return cmd
}

type matchSession struct {
	mu        sync.RWMutex
	matcher   *fingerprint.Matcher
	runID     string
	useBase64 bool
	bestOnly  bool
	telemetry *fingerprint.TelemetryWriter
}

func (s *matchSession) currentMatcher() *fingerprint.Matcher {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.matcher
}

// startWatcher hot-reloads the catalog behind the session. Existing queries
// finish against the database they started with; subsequent inputs see the
// new one.
func (s *matchSession) startWatcher(ctx context.Context, path string) (func(), error) {
	watcher, err := fingerprint.NewCatalogWatcher(path, log.Logger)
	if err != nil {
		return nil, err
	}
	watcher.OnReload = func(db *fingerprint.Database) {
		s.mu.Lock()
		s.matcher = fingerprint.NewMatcher(db)
		s.mu.Unlock()
	}

	wctx, cancel := context.WithCancel(ctx)
	go func() {
		if err := watcher.Start(wctx); err != nil && wctx.Err() == nil {
			log.Warn().Err(err).Msg("catalog watcher stopped")
		}
	}()
	return cancel, nil
}

func (s *matchSession) run(inputs []string) error {
	total := 0
	for _, input := range inputs {
		matcher := s.currentMatcher()

		var (
			results []fingerprint.MatchResult
			err     error
		)
		if s.useBase64 {
			results, err = matcher.MatchBase64(input)
			if err != nil {
				return err
			}
		} else {
			results = matcher.MatchText(input)
		}

		if s.bestOnly && len(results) > 1 {
			results = results[:1]
		}

		if err := s.telemetry.WriteResults(s.runID, input, results); err != nil {
			log.Warn().Err(err).Msg("telemetry write failed")
		}

		total += len(results)
		if err := printResults(input, results); err != nil {
			return err
		}
	}

	return rt.formatter.PrintSummary(fmt.Sprintf("%d match(es) across %d input(s)", total, len(inputs)))
}

func printResults(input string, results []fingerprint.MatchResult) error {
	type jsonMatch struct {
		Input       string            `json:"input"`
		Description string            `json:"description"`
		Params      map[string]string `json:"params"`
		Confidence  float64           `json:"confidence"`
	}

	if rt.cfg.Output.Format == "json" {
		out := make([]jsonMatch, 0, len(results))
		for _, res := range results {
			out = append(out, jsonMatch{
				Input:       input,
				Description: res.Fingerprint.Description,
				Params:      res.Params,
				Confidence:  res.Confidence,
			})
		}
		return rt.formatter.PrintJSON(out)
	}

	rows := make([][]string, 0, len(results))
	for _, res := range results {
		rows = append(rows, []string{
			input,
			res.Fingerprint.Description,
			formatParams(res.Params),
		})
	}
	if len(rows) == 0 {
		return rt.formatter.PrintSummary(fmt.Sprintf("no match: %s", input))
	}
	return rt.formatter.PrintTable([]string{"input", "description", "params"}, rows)
}

func formatParams(params map[string]string) string {
	if len(params) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(params))
	for name, value := range params {
		parts = append(parts, name+"="+value)
	}
	sort.Strings(parts)
	return strings.Join(parts, " ")
}

func collectInputs(cmd *cobra.Command, args []string, inputFile string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	var reader *bufio.Scanner
	if inputFile != "" {
		f, err := os.Open(inputFile)
		if err != nil {
			return nil, fmt.Errorf("open input file: %w", err)
		}
		defer f.Close()
		reader = bufio.NewScanner(f)
	} else {
		reader = bufio.NewScanner(cmd.InOrStdin())
	}

	var inputs []string
	for reader.Scan() {
		line := strings.TrimRight(reader.Text(), "\r\n")
		if line != "" {
			inputs = append(inputs, line)
		}
	}
	return inputs, reader.Err()
}
