// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/holomush/credcheck/internal/credential"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <name|email|password> <value>",
		Short: "Validate a single field value",
		Long: `Validate one field the way an interactive form does on blur.
Prints "ok" when the value is accepted, otherwise the message shown next to
the field, and exits non-zero.`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0], args[1])
		},
	}
}

func runCheck(cmd *cobra.Command, fieldName, value string) error {
	field, err := credential.ParseField(fieldName)
	if err != nil {
		return err
	}
	if err := credential.ValidateField(field, value); err != nil {
		if fe, ok := credential.AsFieldError(err); ok {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), fe.Message)
		}
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "ok")
	return nil
}
