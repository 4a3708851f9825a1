// Command shmk builds a target of a project that is described by shell
// scripts.
//
//	shmk [flags] <project_directory> [<target_name>]
//
// Without target_name the project's default target is built. The exit status
// is 0 on success, 1 if building failed and 2 if the project's configuration
// or the command line is wrong.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"git.fractalqb.de/fractalqb/qblog"
	"git.fractalqb.de/fractalqb/shmk"
	"git.fractalqb.de/fractalqb/shmk/shmkore"
	"github.com/spf13/cobra"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitConfig = 2
)

// usageError marks errors caused by the command line or the settings.
type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

type options struct {
	log       string
	logFormat string
	config    string
	dryRun    bool
	clean     bool
	list      bool
	format    string
	batch     string
	env       []string
	compiler  string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	var uerr usageError
	if errors.As(err, &uerr) {
		fmt.Fprintln(stderr, "shmk:", err)
	}
	return exitCode(err)
}

func exitCode(err error) int {
	var uerr usageError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &uerr), shmkore.IsConfigError(err):
		return exitConfig
	}
	return exitFailed
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "shmk [flags] <project_directory> [<target_name>]",
		Short: "Build a target of a project described by shell scripts",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 || len(args) > 2 {
				return usageError{fmt.Errorf("need project directory and optional target, got %d arguments", len(args))}
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})
	fs := cmd.Flags()
	fs.StringVar(&opts.log, "log", "", "log level: off, warn, info or debug")
	fs.StringVar(&opts.logFormat, "log-format", "", "log output: plain or color")
	fs.StringVar(&opts.config, "config", "", "settings file (TOML)")
	fs.BoolVarP(&opts.dryRun, "dry-run", "n", false, "only log commands, do not run them")
	fs.BoolVar(&opts.clean, "clean", false, "remove the build output of the target")
	fs.BoolVar(&opts.list, "list", false, "list the project's targets")
	fs.StringVar(&opts.format, "format", "table", "list format: table, json or yaml")
	fs.StringVar(&opts.batch, "batch", "", "run the commands in `file` concurrently in the project directory")
	fs.StringArrayVarP(&opts.env, "env", "e", nil, "set `key=value` in the environment of commands")
	fs.StringVar(&opts.compiler, "cc", "", "C compiler for targets that do not set one")
	return cmd
}

func (opts *options) run(cmd *cobra.Command, args []string, stdout, stderr io.Writer) error {
	if n := countTrue(opts.clean, opts.list, opts.batch != ""); n > 1 {
		return usageError{errors.New("only one of --clean, --list and --batch allowed")}
	}
	cfg, err := loadSettings(opts.config)
	if err != nil {
		return usageError{err}
	}
	if cmd.Flags().Changed("log") || cfg.Log == "" {
		cfg.Log = opts.log
	}
	if cmd.Flags().Changed("log-format") || cfg.LogFormat == "" {
		cfg.LogFormat = opts.logFormat
	}
	if cmd.Flags().Changed("cc") {
		cfg.Compiler = opts.compiler
	}
	tracer, err := newTracer(cfg, stderr)
	if err != nil {
		return usageError{err}
	}
	tr := shmkore.NewTrace(cmd.Context(), tracer)
	for _, k := range cfg.Unknown {
		tr.Warn("unknown `setting`", `setting`, k)
	}

	env := shmkore.DefaultEnv(tr)
	env.Out, env.Err = stdout, stderr
	env.DryRun = opts.dryRun
	env.SetTags(cfg.Env...)
	env.SetTags(opts.env...)

	reg, err := shmkore.NewRegistry(shmk.CSimple{Compiler: cfg.Compiler})
	if err != nil {
		return err
	}
	bd := shmk.NewBuilder(env, reg)

	dir, target := args[0], ""
	if len(args) > 1 {
		target = args[1]
	}
	if opts.list {
		prj, err := shmk.LoadConfig(tr, env, dir)
		if err != nil {
			return traceErr(tr, err)
		}
		return listTargets(stdout, opts.format, prj)
	}

	prj, err := shmk.LoadProject(tr, env, dir, target)
	if err != nil {
		return traceErr(tr, err)
	}
	switch {
	case opts.clean:
		err = bd.Clean(tr, prj)
	case opts.batch != "":
		var cmds []string
		if cmds, err = readBatch(opts.batch); err != nil {
			return usageError{err}
		}
		_, err = bd.Batch(tr, prj, cmds...)
	default:
		_, err = bd.Project(tr, prj)
	}
	return traceErr(tr, err)
}

func countTrue(bs ...bool) (n int) {
	for _, b := range bs {
		if b {
			n++
		}
	}
	return n
}

func traceErr(tr *shmkore.Trace, err error) error {
	if err != nil {
		tr.Error("shmk failed: `error`", `error`, err)
	}
	return err
}

func newTracer(cfg settings, w io.Writer) (shmkore.Tracer, error) {
	level, err := shmkore.ParseTraceLog(cfg.Log)
	if err != nil {
		return nil, err
	}
	switch cfg.LogFormat {
	case "", "plain":
		return &shmk.WriteTracer{W: w, Log: level}, nil
	case "color":
		return shmk.LogTracer{
			Log:   qblog.New(&qblog.DefaultConfig),
			Level: level,
		}, nil
	}
	return nil, fmt.Errorf("unknown log format '%s'", cfg.LogFormat)
}

// readBatch reads one command per line. Empty lines and lines starting with
// '#' are skipped.
func readBatch(path string) (cmds []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	scn := bufio.NewScanner(f)
	for scn.Scan() {
		line := strings.TrimSpace(scn.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		cmds = append(cmds, line)
	}
	return cmds, scn.Err()
}
