// Copyright 2026 Recogo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package commands

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/recogo/recogo/cmd/recogo/internal/format"
	"github.com/recogo/recogo/pkg/config"
	"github.com/recogo/recogo/pkg/fingerprint"
	"github.com/recogo/recogo/pkg/logging"
)

// NewRootCommand builds the recogo root command with all subcommands wired.
func NewRootCommand() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "recogo",
		Short: "Fingerprint-based text recognition",
		Long: `Recogo classifies unstructured text (service banners, headers, protocol
handshakes) against a database of fingerprint patterns and extracts
structured attributes from each match.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&configFile, "config", defaultConfigPath(), "path to config file")
	flags.String("log.level", "", "log level (trace, debug, info, warn, error)")
	flags.String("output.format", "", "output format (json, table)")
	flags.Bool("output.quiet", false, "suppress summary output")
	flags.Bool("output.no_color", false, "disable colored output")
	flags.StringSlice("database.paths", nil, "fingerprint catalog file (repeatable)")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(configFile, cmd.Flags())
		if err != nil {
			return err
		}
		if err := logging.Configure(cfg.Log.Level); err != nil {
			return err
		}
		setRuntime(cmd, cfg)
		return nil
	}

	cmd.AddCommand(newMatchCommand())
	cmd.AddCommand(newVerifyCommand())
	cmd.AddCommand(newDBCommand())
	cmd.AddCommand(newFuzzyCommand())

	return cmd
}

// Execute runs the CLI and maps errors to exit codes.
func Execute() int {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		if rt != nil && rt.formatter != nil {
			_ = rt.formatter.PrintError(err)
		} else {
			cmd.PrintErrln("Error:", err)
		}
		return fingerprint.ExitCode(err)
	}
	return 0
}

func loadConfig(configFile string, flags *pflag.FlagSet) (config.Config, error) {
	mgr := config.NewManager(configFile, flags)
	if err := mgr.Load(); err != nil {
		return config.Config{}, err
	}
	return mgr.Get(), nil
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".recogo", "config.yaml")
}

// runtime carries per-invocation state shared between root and subcommands.
// The CLI runs one command per process, so a package variable is enough.
type runtime struct {
	cfg       config.Config
	formatter format.Formatter
}

var rt *runtime

func setRuntime(cmd *cobra.Command, cfg config.Config) {
	rt = &runtime{
		cfg: cfg,
		formatter: format.New(
			cmd.OutOrStdout(),
			cmd.ErrOrStderr(),
			format.ParseMode(cfg.Output.Format),
			cfg.Output.Quiet,
			!cfg.Output.NoColor,
		),
	}
}

// loadDatabases merges all configured catalogs into one database,
// preserving path order and, within a catalog, declaration order. Files
// ending in .yaml or .yml are parsed as YAML catalogs; everything else is
// treated as XML.
func loadDatabases(paths []string) (*fingerprint.Database, error) {
	if len(paths) == 0 {
		return nil, fingerprint.NewInvalidCatalogError("no fingerprint catalog configured; pass --database.paths")
	}

	merged := fingerprint.NewDatabase()
	for _, path := range paths {
		var (
			db  *fingerprint.Database
			err error
		)
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			data, rerr := os.ReadFile(path)
			if rerr != nil {
				return nil, fingerprint.NewInvalidCatalogError("read catalog %s: %v", path, rerr)
			}
			db, err = fingerprint.ParseYAML(data)
		default:
			db, err = fingerprint.LoadFile(path)
		}
		if err != nil {
			return nil, err
		}
		for _, fp := range db.Fingerprints {
			merged.Add(fp)
		}
	}
	return merged, nil
}
