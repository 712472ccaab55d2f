// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Command gen-schema writes the credential record JSON Schema files.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/holomush/credcheck/internal/credential"
	"github.com/holomush/credcheck/internal/schema"
)

func main() {
	outDir := "schemas"
	if len(os.Args) > 1 {
		outDir = os.Args[1]
	}
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directory: %v\n", err)
		os.Exit(1)
	}

	for _, mode := range []credential.Mode{credential.SignUp, credential.SignIn} {
		data, err := schema.Generate(mode)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating %s schema: %v\n", mode, err)
			os.Exit(1)
		}
		outPath := filepath.Join(outDir, mode.String()+".schema.json")
		if err := os.WriteFile(outPath, append(data, '\n'), 0o600); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Generated %s\n", outPath)
	}
}
