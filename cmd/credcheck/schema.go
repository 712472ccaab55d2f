// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"io"

	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/holomush/credcheck/internal/schema"
)

type schemaConfig struct {
	mode   string
	format string
}

func newSchemaCmd() *cobra.Command {
	cfg := &schemaConfig{}

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for a record mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSchema(cmd.OutOrStdout(), cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.mode, "mode", "signup", "record mode (signup or signin)")
	cmd.Flags().StringVar(&cfg.format, "format", "json", "output format (json or yaml)")

	return cmd
}

func runSchema(w io.Writer, cfg *schemaConfig) error {
	mode, err := modeFlag(cfg.mode)
	if err != nil {
		return err
	}
	data, err := schema.Generate(mode)
	if err != nil {
		return err
	}

	switch cfg.format {
	case "json":
		_, err = w.Write(append(data, '\n'))
	case "yaml":
		data, err = toYAML(data)
		if err == nil {
			_, err = w.Write(data)
		}
	default:
		return oops.Code("CLI_INVALID_FORMAT").
			With("format", cfg.format).
			Errorf("--format must be json or yaml, got %q", cfg.format)
	}
	if err != nil {
		return oops.Code("CLI_OUTPUT_FAILED").Wrap(err)
	}
	return nil
}

// toYAML re-renders a JSON document as block-style YAML, keeping key order.
func toYAML(data []byte) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	blockStyle(&doc)
	return yaml.Marshal(&doc)
}

func blockStyle(n *yaml.Node) {
	n.Style &^= yaml.FlowStyle
	if n.Kind == yaml.ScalarNode && n.Tag == "!!str" {
		n.Style &^= yaml.DoubleQuotedStyle
	}
	for _, child := range n.Content {
		blockStyle(child)
	}
}
