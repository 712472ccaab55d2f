// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/holomush/credcheck/internal/credential"
	"github.com/holomush/credcheck/internal/schema"
)

type recordConfig struct {
	mode string
	file string
}

func newRecordCmd() *cobra.Command {
	cfg := &recordConfig{}

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Validate a complete sign-up or sign-in document",
		Long: `Read a YAML or JSON document with name, email and password keys,
validate it as a whole record and print the accepted record as JSON.
The first rejected field is reported and the command exits non-zero.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRecord(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.mode, "mode", "signup", "record mode (signup or signin)")
	cmd.Flags().StringVarP(&cfg.file, "file", "f", "-", "document path, or - for stdin")

	return cmd
}

func readDocument(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" || path == "" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, oops.Code("CLI_READ_FAILED").With("path", "stdin").Wrap(err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the operator
	if err != nil {
		return nil, oops.Code("CLI_READ_FAILED").With("path", path).Wrap(err)
	}
	return data, nil
}

func runRecord(cmd *cobra.Command, cfg *recordConfig) error {
	mode, err := modeFlag(cfg.mode)
	if err != nil {
		return err
	}

	data, err := readDocument(cmd, cfg.file)
	if err != nil {
		return err
	}

	candidate, err := schema.Decode(mode, data)
	if err != nil {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), schema.FormatError(err))
		return err
	}

	record, err := credential.ValidateRecord(candidate, mode)
	if err != nil {
		if fe, ok := credential.AsFieldError(err); ok {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", fe.Field, fe.Message)
		}
		return err
	}
	return writeRecord(cmd.OutOrStdout(), record)
}
