// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"encoding/json"
	"io"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/holomush/credcheck/internal/credential"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the credcheck CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credcheck",
		Short: "credcheck - sign-up and sign-in credential validation",
		Long: `credcheck validates display names, email addresses and passwords
for sign-up and sign-in, from the command line or over HTTP.`,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newRecordCmd())
	cmd.AddCommand(newFormCmd())
	cmd.AddCommand(newSchemaCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

// modeFlag parses the --mode flag value.
func modeFlag(value string) (credential.Mode, error) {
	mode, err := credential.ParseMode(value)
	if err != nil {
		return 0, oops.Code("CLI_INVALID_MODE").
			With("mode", value).
			Errorf("--mode must be signup or signin, got %q", value)
	}
	return mode, nil
}

// writeRecord prints an accepted record as indented JSON.
func writeRecord(w io.Writer, record credential.Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(record); err != nil {
		return oops.Code("CLI_OUTPUT_FAILED").Wrap(err)
	}
	return nil
}
