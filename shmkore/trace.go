package shmkore

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// Tracer receives everything a build reports. Messages use sllm templates,
// i.e. argument names in backticks refer to the key/value pairs in args.
// Implementations must be safe for concurrent use because commands of a
// batch report concurrently.
type Tracer interface {
	Debug(t *Trace, msg string, args ...any)
	Info(t *Trace, msg string, args ...any)
	Warn(t *Trace, msg string, args ...any)
	Error(t *Trace, msg string, args ...any)

	StartProject(t *Trace, p *Project, activity string)
	DoneProject(t *Trace, p *Project, activity string, dt time.Duration)
}

type TraceLog int

var DefaultTraceLog TraceLog = TraceWarn

const (
	TraceWarn TraceLog = (1 << iota)
	TraceInfo
	TraceDebug
)

func ParseTraceLog(f string) (TraceLog, error) {
	switch strings.ToLower(strings.TrimSpace(f)) {
	case "":
		return DefaultTraceLog, nil
	case "off":
		return 0, nil
	case "warn", "w":
		return TraceWarn, nil
	case "info", "i":
		return TraceWarn | TraceInfo, nil
	case "debug", "d", "trace", "t":
		return TraceWarn | TraceInfo | TraceDebug, nil
	}
	return 0, fmt.Errorf("illegal trace log flag '%s'", f)
}

func (l TraceLog) Debug() bool { return l&TraceDebug != 0 }
func (l TraceLog) Info() bool  { return l&(TraceInfo|TraceDebug) != 0 }
func (l TraceLog) Warn() bool  { return l&(TraceWarn|TraceInfo|TraceDebug) != 0 }

// Trace is the position within a build from where something is reported. The
// zero value must not be used, use [NewTrace] and derive sub-traces with
// [Trace.Project] and [Trace.Command].
type Trace struct {
	root *traceRoot
	up   *Trace
	obj  any
	id   uint64
}

func NewTrace(ctx context.Context, t Tracer) *Trace {
	if ctx == nil {
		ctx = context.Background()
	}
	root := &traceRoot{ctx: ctx, tr: t}
	return &Trace{root: root}
}

func (t *Trace) Ctx() context.Context { return t.root.ctx }

func (t *Trace) Debug(msg string, args ...any) { t.root.tr.Debug(t, msg, args...) }
func (t *Trace) Info(msg string, args ...any)  { t.root.tr.Info(t, msg, args...) }
func (t *Trace) Warn(msg string, args ...any)  { t.root.tr.Warn(t, msg, args...) }
func (t *Trace) Error(msg string, args ...any) { t.root.tr.Error(t, msg, args...) }

func (t *Trace) StartProject(p *Project, activity string) {
	t.root.tr.StartProject(t, p, activity)
}

func (t *Trace) DoneProject(p *Project, activity string, dt time.Duration) {
	t.root.tr.DoneProject(t, p, activity, dt)
}

func (t *Trace) TopTag() string {
	switch t.obj.(type) {
	case *Project:
		return fmt.Sprintf("{%d}", t.id)
	case command:
		return fmt.Sprintf("(%d)", t.id)
	case nil:
		return ""
	}
	return fmt.Sprintf("!%T!", t.obj)
}

func (t *Trace) Path() string {
	var sb strings.Builder
	sb.WriteByte('<')
	for ; t != nil; t = t.up {
		sb.WriteString(t.TopTag())
	}
	sb.WriteByte('>')
	return sb.String()
}

func (t *Trace) String() string { return t.Path() }

// Project derives the trace for work done on project p.
func (t *Trace) Project(p *Project) *Trace {
	return &Trace{
		root: t.root,
		up:   t,
		obj:  p,
		id:   t.root.idSeq.Add(1),
	}
}

// Command derives the trace for one spawned command.
func (t *Trace) Command(desc string) *Trace {
	return &Trace{
		root: t.root,
		up:   t,
		obj:  command(desc),
		id:   t.root.idSeq.Add(1),
	}
}

type command string

type traceRoot struct {
	ctx   context.Context
	tr    Tracer
	idSeq atomic.Uint64
}
