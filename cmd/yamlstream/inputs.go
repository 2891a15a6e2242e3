// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"io"
	"slices"
	"time"

	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// stdinName stands for standard input in the file arguments.
const stdinName = "-"

// inputFunc processes one named input and writes its result to w.
type inputFunc func(name string, r io.Reader, w io.Writer) error

// forEachInput runs fn over every named input, at most a.jobs at a time.
// Each input gets its own engine and output buffer; buffers are written
// to stdout in argument order. Output stops at the first failed input.
func (a *app) forEachInput(ctx context.Context, names []string, fn inputFunc) error {
	if len(names) == 0 {
		names = []string{stdinName}
	}
	if i := slices.Index(names, stdinName); i >= 0 && slices.Contains(names[i+1:], stdinName) {
		return errors.New("stdin (-) may be given only once")
	}

	outputs := make([]bytes.Buffer, len(names))
	errs := make([]error, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.jobs)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if ctx.Err() != nil {
				// Another input failed already.
				return nil
			}
			start := time.Now()
			if err := a.processInput(name, &outputs[i], fn); err != nil {
				errs[i] = err
				return err
			}
			level.Debug(a.logger).Log("msg", "processed input", "input", name, "bytes", outputs[i].Len(), "duration", time.Since(start))
			return nil
		})
	}
	waitErr := g.Wait()

	for i := range names {
		if errs[i] != nil {
			return errs[i]
		}
		if _, err := a.stdout.Write(outputs[i].Bytes()); err != nil {
			return errors.Wrap(err, "failed to write output")
		}
	}
	return waitErr
}

func (a *app) processInput(name string, w io.Writer, fn inputFunc) error {
	if name == stdinName {
		return errors.Wrap(fn(name, a.stdin, w), "stdin")
	}
	f, err := a.fs.Open(name)
	if err != nil {
		return errors.Wrap(err, "failed to open input")
	}
	defer f.Close()
	return errors.Wrap(fn(name, f, w), name)
}
