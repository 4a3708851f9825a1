package shmk

import (
	"time"

	"git.fractalqb.de/fractalqb/shmk/shmkore"
)

// Logger is the subset of [log/slog.Logger] a [LogTracer] needs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// LogTracer forwards trace messages to a structured logger. The trace path
// is added as attribute "trace". Level filters before the logger's own level
// applies.
type LogTracer struct {
	Log   Logger
	Level shmkore.TraceLog
}

var _ shmkore.Tracer = LogTracer{}

func (lt LogTracer) Debug(t *shmkore.Trace, msg string, args ...any) {
	if lt.Level.Debug() {
		lt.Log.Debug(msg, withTrace(t, args)...)
	}
}

func (lt LogTracer) Info(t *shmkore.Trace, msg string, args ...any) {
	if lt.Level.Info() {
		lt.Log.Info(msg, withTrace(t, args)...)
	}
}

func (lt LogTracer) Warn(t *shmkore.Trace, msg string, args ...any) {
	if lt.Level.Warn() {
		lt.Log.Warn(msg, withTrace(t, args)...)
	}
}

func (lt LogTracer) Error(t *shmkore.Trace, msg string, args ...any) {
	lt.Log.Error(msg, withTrace(t, args)...)
}

func (lt LogTracer) StartProject(t *shmkore.Trace, p *shmkore.Project, activity string) {
	if lt.Level.Info() {
		lt.Log.Info("start `activity` of `project` in `dir`",
			`trace`, t.Path(),
			`activity`, activity,
			`project`, p.String(),
			`dir`, p.Dir,
		)
	}
}

func (lt LogTracer) DoneProject(t *shmkore.Trace, p *shmkore.Project, activity string, dt time.Duration) {
	if lt.Level.Info() {
		lt.Log.Info("`activity` of `project` `took`",
			`trace`, t.Path(),
			`activity`, activity,
			`project`, p.String(),
			`took`, dt,
		)
	}
}

func withTrace(t *shmkore.Trace, args []any) []any {
	res := make([]any, 0, len(args)+2)
	res = append(res, `trace`, t.Path())
	return append(res, args...)
}
