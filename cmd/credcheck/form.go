// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/holomush/credcheck/internal/credential"
	"github.com/holomush/credcheck/internal/form"
)

type formConfig struct {
	mode string
}

func newFormCmd() *cobra.Command {
	cfg := &formConfig{}

	cmd := &cobra.Command{
		Use:   "form",
		Short: "Fill in a sign-up or sign-in form interactively",
		Long: `Prompt for each field of the form, showing the inline error and
prompting again until the value is accepted. Passwords are read without echo
when stdin is a terminal. The accepted record is printed as JSON.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runForm(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.mode, "mode", "signup", "form mode (signup or signin)")

	return cmd
}

var fieldLabels = map[credential.Field]string{
	credential.FieldName:     "Name",
	credential.FieldEmail:    "Email",
	credential.FieldPassword: "Password",
}

// prompter reads field values line by line. Secrets skip the echo when the
// input is a terminal.
type prompter struct {
	in     *bufio.Reader
	out    io.Writer
	secret func() (string, error)
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	p := &prompter{in: bufio.NewReader(in), out: out}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		p.secret = func() (string, error) {
			b, err := term.ReadPassword(fd)
			_, _ = fmt.Fprintln(p.out)
			return string(b), err
		}
	}
	return p
}

func (p *prompter) line() (string, error) {
	s, err := p.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || s == "") {
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}

func (p *prompter) ask(label string, secret bool) (string, error) {
	_, _ = fmt.Fprintf(p.out, "%s: ", label)
	if secret && p.secret != nil {
		return p.secret()
	}
	return p.line()
}

func runForm(cmd *cobra.Command, cfg *formConfig) error {
	mode, err := modeFlag(cfg.mode)
	if err != nil {
		return err
	}
	f, err := form.New(mode)
	if err != nil {
		return err
	}

	p := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
	for _, field := range f.Fields() {
		if err := fill(p, f, field); err != nil {
			return err
		}
	}

	record, err := f.Submit(cmd.Context(), nil)
	if err != nil {
		return err
	}
	return writeRecord(cmd.OutOrStdout(), record)
}

// fill prompts for a field until its inline error clears.
func fill(p *prompter, f *form.Form, field credential.Field) error {
	for {
		value, err := p.ask(fieldLabels[field], field == credential.FieldPassword)
		if err != nil {
			return oops.Code("FORM_INPUT_ENDED").
				With("field", field.String()).
				Wrap(err)
		}
		if err := f.Set(field, value); err != nil {
			return err
		}
		if err := f.Blur(field); err != nil {
			return err
		}
		msg := f.Error(field)
		if msg == "" {
			return nil
		}
		_, _ = fmt.Fprintf(p.out, "  %s\n", msg)
	}
}
