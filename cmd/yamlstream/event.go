// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"go.yaml.in/yamlstream"
)

func (a *app) eventsCommand() *cobra.Command {
	var marks bool
	cmd := &cobra.Command{
		Use:   "events [files...]",
		Short: "Print the event stream in yaml-test-suite notation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.forEachInput(cmd.Context(), args, func(_ string, r io.Reader, w io.Writer) error {
				return writeEvents(r, w, marks)
			})
		},
	}
	cmd.Flags().BoolVar(&marks, "marks", false, "Append the start and end marks of each event")
	return cmd
}

func writeEvents(r io.Reader, w io.Writer, marks bool) error {
	p := yamlstream.NewParser(r)
	for {
		event, err := p.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		line := yamlstream.FormatEvent(&event)
		if marks {
			line += "\t" + formatMarks(event.StartMark, event.EndMark)
		}
		fmt.Fprintln(w, line)
	}
}

func (a *app) emitCommand() *cobra.Command {
	var f emitFlags
	cmd := &cobra.Command{
		Use:   "emit [files...]",
		Short: "Write YAML for event text in yaml-test-suite notation",
		Long: `Read one event per line in yaml-test-suite notation (+STR, +DOC, =VAL :a,
...) and write the YAML text the emitter produces for them. Blank lines
and anything after a tab are ignored, so the output of 'events --marks'
is accepted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.emitterOptions(cmd, &f)
			if err != nil {
				return err
			}
			return a.forEachInput(cmd.Context(), args, func(_ string, r io.Reader, w io.Writer) error {
				return emitEventText(r, w, opts)
			})
		},
	}
	f.register(cmd)
	return cmd
}

// maxEventLine bounds one line of event text, and so one scalar value.
const maxEventLine = 64 << 20

func emitEventText(r io.Reader, w io.Writer, opts []yamlstream.Option) error {
	e, err := yamlstream.NewEmitter(w, opts...)
	if err != nil {
		return err
	}
	lines := bufio.NewScanner(r)
	lines.Buffer(nil, maxEventLine)
	lineNo := 0
	for lines.Scan() {
		lineNo++
		line, _, _ := strings.Cut(lines.Text(), "\t")
		if strings.TrimSpace(line) == "" {
			continue
		}
		event, err := yamlstream.ParseEventLine(line)
		if err != nil {
			return errors.Wrapf(err, "line %d", lineNo)
		}
		if err := e.Emit(event); err != nil {
			return errors.Wrapf(err, "line %d", lineNo)
		}
	}
	if err := lines.Err(); err != nil {
		return errors.Wrap(err, "failed to read event text")
	}
	return e.Flush()
}

func (a *app) reformatCommand() *cobra.Command {
	var f emitFlags
	cmd := &cobra.Command{
		Use:   "reformat [files...]",
		Short: "Parse YAML and write it back through the emitter",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.emitterOptions(cmd, &f)
			if err != nil {
				return err
			}
			return a.forEachInput(cmd.Context(), args, func(_ string, r io.Reader, w io.Writer) error {
				return reformat(r, w, opts)
			})
		},
	}
	f.register(cmd)
	return cmd
}

func reformat(r io.Reader, w io.Writer, opts []yamlstream.Option) error {
	e, err := yamlstream.NewEmitter(w, opts...)
	if err != nil {
		return err
	}
	p := yamlstream.NewParser(r)
	for {
		event, err := p.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if err := e.Emit(event); err != nil {
			return err
		}
	}
	return e.Flush()
}
