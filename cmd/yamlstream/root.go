// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"go.yaml.in/yamlstream"
)

// app holds what the commands share: where they read and write, the
// logger and the persistent flags.
type app struct {
	fs     afero.Fs
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger log.Logger

	logLevel   string
	configFile string
	jobs       int
}

func newApp(fs afero.Fs, stdin io.Reader, stdout, stderr io.Writer) *app {
	logger, _ := newLogger(stderr, "info")
	return &app{
		fs:     fs,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: logger,
	}
}

// execute runs the command line args and logs the error that ends it.
func (a *app) execute(ctx context.Context, args []string) error {
	cmd := a.command()
	cmd.SetArgs(args)
	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		level.Error(a.logger).Log("msg", "command failed", "err", err)
	}
	return err
}

func (a *app) command() *cobra.Command {
	root := &cobra.Command{
		Use:   "yamlstream",
		Short: "Inspect and rewrite YAML at the token and event level",
		Long: `The yamlstream tool shows how the go.yaml.in/yamlstream engine handles
YAML text. It reads YAML (or event text) from files or stdin and writes
results to stdout.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			logger, err := newLogger(a.stderr, a.logLevel)
			if err != nil {
				return err
			}
			a.logger = logger
			if a.jobs < 1 {
				return errors.Errorf("--jobs must be at least 1, got %d", a.jobs)
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.logLevel, "log.level", "info", "Only log messages with the given severity or above. One of: [debug, info, warn, error]")
	flags.StringVarP(&a.configFile, "config", "C", "", "Load emitter options from a YAML config file")
	flags.IntVarP(&a.jobs, "jobs", "j", 4, "Number of inputs processed concurrently")

	root.AddCommand(
		a.tokensCommand(),
		a.eventsCommand(),
		a.emitCommand(),
		a.reformatCommand(),
		a.statsCommand(),
	)
	return root
}

func newLogger(w io.Writer, lvl string) (log.Logger, error) {
	var allow level.Option
	switch lvl {
	case "debug":
		allow = level.AllowDebug()
	case "info":
		allow = level.AllowInfo()
	case "warn":
		allow = level.AllowWarn()
	case "error":
		allow = level.AllowError()
	default:
		return nil, errors.Errorf("unknown log level %q", lvl)
	}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, allow)
	return log.With(logger, "ts", log.DefaultTimestampUTC), nil
}

// emitFlags are the emitter settings a command accepts on its command line.
type emitFlags struct {
	canonical     bool
	indent        int
	width         int
	unicode       bool
	lineBreak     string
	explicitStart bool
}

func (f *emitFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.BoolVar(&f.canonical, "canonical", false, "Write canonical YAML")
	flags.IntVar(&f.indent, "indent", 2, "Indentation spaces (1-9)")
	flags.IntVar(&f.width, "width", 80, "Preferred line width, -1 for unlimited")
	flags.BoolVar(&f.unicode, "unicode", true, "Allow non-ASCII characters in output")
	flags.StringVar(&f.lineBreak, "line-break", "ln", "Line ending: ln, cr or crln")
	flags.BoolVar(&f.explicitStart, "explicit-start", false, "Always write the --- document marker")
}

// emitterOptions collects the config file settings, then the flags set on
// the command line, so that flags win.
func (a *app) emitterOptions(cmd *cobra.Command, f *emitFlags) ([]yamlstream.Option, error) {
	var opts []yamlstream.Option
	if a.configFile != "" {
		data, err := afero.ReadFile(a.fs, a.configFile)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read config file")
		}
		fileOpts, err := yamlstream.OptsYAML(string(data))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse config file %s", a.configFile)
		}
		opts = append(opts, fileOpts)
	}

	flags := cmd.Flags()
	if flags.Changed("canonical") {
		opts = append(opts, yamlstream.WithCanonical(f.canonical))
	}
	if flags.Changed("indent") {
		opts = append(opts, yamlstream.WithIndent(f.indent))
	}
	if flags.Changed("width") {
		opts = append(opts, yamlstream.WithLineWidth(f.width))
	}
	if flags.Changed("unicode") {
		opts = append(opts, yamlstream.WithUnicode(f.unicode))
	}
	if flags.Changed("explicit-start") {
		opts = append(opts, yamlstream.WithExplicitStart(f.explicitStart))
	}
	if flags.Changed("line-break") {
		var lb yamlstream.LineBreak
		switch f.lineBreak {
		case "ln":
			lb = yamlstream.LineBreakLN
		case "cr":
			lb = yamlstream.LineBreakCR
		case "crln":
			lb = yamlstream.LineBreakCRLN
		default:
			return nil, errors.Errorf("--line-break must be ln, cr or crln, got %q", f.lineBreak)
		}
		opts = append(opts, yamlstream.WithLineBreak(lb))
	}

	// Report bad values now rather than once per input.
	if _, err := yamlstream.NewEmitter(io.Discard, opts...); err != nil {
		return nil, errors.Wrap(err, "invalid emitter options")
	}
	return opts, nil
}
