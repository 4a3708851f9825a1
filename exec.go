package shmk

import (
	"errors"
	"io"
	"os/exec"
	"strings"

	"git.fractalqb.de/fractalqb/shmk/shmkore"
	"mvdan.cc/sh/v3/syntax"
)

// Cmd is one external command to be run by [RunCmd].
type Cmd struct {
	Exe  string
	Args []string
	// Dir is the working directory. Empty means the current working
	// directory of the process.
	Dir string
}

func (c Cmd) String() string {
	var sb strings.Builder
	sb.WriteString(quoteArg(c.Exe))
	for _, a := range c.Args {
		sb.WriteByte(' ')
		sb.WriteString(quoteArg(a))
	}
	return sb.String()
}

func quoteArg(s string) string {
	q, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		return s
	}
	return q
}

// Outcome is the result of a finished command. Status is the exit status
// captured when the process completed. It is -1 when the process could not
// be started or was terminated by a signal.
type Outcome struct {
	Cmd    string
	Status int
	Err    error
}

func (o Outcome) Failed() bool { return o.Status != 0 || o.Err != nil }

// Failure returns the [shmkore.CommandFailure] for step if o failed and nil
// otherwise.
func (o Outcome) Failure(step shmkore.Step) error {
	if !o.Failed() {
		return nil
	}
	return shmkore.CommandFailure{
		Step:   step,
		Cmd:    o.Cmd,
		Status: o.Status,
		Err:    o.Err,
	}
}

// Run runs exe with args and waits for it to finish. A non-zero exit status
// is not an error, check [Outcome.Failed]. The error is only non-nil if the
// process could not be started. Success is traced at debug level, failure at
// error level.
func Run(tr *shmkore.Trace, env *shmkore.Env, exe string, args ...string) (Outcome, error) {
	return RunCmd(tr, env, Cmd{Exe: exe, Args: args})
}

func RunCmd(tr *shmkore.Trace, env *shmkore.Env, c Cmd) (Outcome, error) {
	out := run(tr, env, c)
	if out.Failed() {
		traceFailure(tr, out, c.Dir)
	} else {
		tr.Debug("done `cmd`", `cmd`, out.Cmd)
	}
	if out.Status < 0 && out.Err != nil && !isExit(out.Err) {
		return out, out.Err
	}
	return out, nil
}

func traceFailure(tr *shmkore.Trace, out Outcome, dir string) {
	if out.Err != nil {
		tr.Error("failed `cmd` in `dir` with `error`",
			`cmd`, out.Cmd,
			`dir`, dir,
			`error`, out.Err,
		)
		return
	}
	tr.Error("failed `cmd` in `dir` with `status`",
		`cmd`, out.Cmd,
		`dir`, dir,
		`status`, out.Status,
	)
}

func run(tr *shmkore.Trace, env *shmkore.Env, c Cmd) Outcome {
	out := Outcome{Cmd: c.String()}
	if env.DryRun {
		tr.Info("dry-run `cmd`", `cmd`, out.Cmd)
		return out
	}
	xenv, err := env.ExecEnv()
	if err != nil {
		tr.Warn(err.Error(), `cmd`, out.Cmd)
	}
	cmd := exec.CommandContext(tr.Ctx(), c.Exe, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = xenv
	cmd.Stdin = env.In
	cmd.Stdout = orDiscard(env.Out)
	cmd.Stderr = orDiscard(env.Err)
	tr.Debug("exec `cmd` in `dir`", `cmd`, out.Cmd, `dir`, cmd.Dir)
	err = cmd.Run()
	var xerr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &xerr):
		out.Status = xerr.ExitCode()
		if out.Status < 0 {
			out.Err = err
		}
	default:
		out.Status = -1
		out.Err = err
	}
	return out
}

func isExit(err error) bool {
	var xerr *exec.ExitError
	return errors.As(err, &xerr)
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
