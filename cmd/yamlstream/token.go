// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"go.yaml.in/yamlstream"
)

func (a *app) tokensCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [files...]",
		Short: "Print the token stream, one token per line with its marks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.forEachInput(cmd.Context(), args, writeTokens)
		},
	}
}

func writeTokens(_ string, r io.Reader, w io.Writer) error {
	s := yamlstream.NewScanner(r)
	for {
		token, err := s.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(w, formatToken(&token))
	}
}

// formatToken renders a token as its 1-based mark range, its type and
// its payload, e.g. `1:1-1:2 SCALAR style=Plain value="a"`.
func formatToken(token *yamlstream.Token) string {
	var b strings.Builder
	b.WriteString(formatMarks(token.StartMark, token.EndMark))
	b.WriteByte(' ')
	b.WriteString(strings.TrimSuffix(token.Type.String(), "_TOKEN"))
	switch token.Type {
	case yamlstream.TokenStreamStart:
		fmt.Fprintf(&b, " encoding=%s", token.Encoding)
	case yamlstream.TokenVersionDirective:
		fmt.Fprintf(&b, " version=%d.%d", token.Major, token.Minor)
	case yamlstream.TokenTagDirective:
		fmt.Fprintf(&b, " handle=%q prefix=%q", token.Value, token.Prefix)
	case yamlstream.TokenAlias, yamlstream.TokenAnchor:
		fmt.Fprintf(&b, " value=%q", token.Value)
	case yamlstream.TokenTag:
		fmt.Fprintf(&b, " handle=%q suffix=%q", token.Value, token.Suffix)
	case yamlstream.TokenScalar:
		fmt.Fprintf(&b, " style=%s value=%q", token.Style, token.Value)
	}
	return b.String()
}

func formatMarks(start, end yamlstream.Mark) string {
	return fmt.Sprintf("%d:%d-%d:%d", start.Line+1, start.Column+1, end.Line+1, end.Column+1)
}
