package shmkore

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

// TestTracer logs to a test and records all messages.
type TestTracer struct {
	T testing.TB

	mu   sync.Mutex
	msgs []TraceMsg
}

type TraceMsg struct {
	Level string
	Tag   string
	Msg   string
	Args  []any
}

var _ Tracer = (*TestTracer)(nil)

func NewTestTrace(t testing.TB) (*Trace, *TestTracer) {
	tt := &TestTracer{T: t}
	return NewTrace(context.Background(), tt), tt
}

func (tr *TestTracer) Debug(t *Trace, msg string, args ...any) {
	tr.record("DEBUG", t, msg, args)
}

func (tr *TestTracer) Info(t *Trace, msg string, args ...any) {
	tr.record("INFO", t, msg, args)
}

func (tr *TestTracer) Warn(t *Trace, msg string, args ...any) {
	tr.record("WARN", t, msg, args)
}

func (tr *TestTracer) Error(t *Trace, msg string, args ...any) {
	tr.record("ERROR", t, msg, args)
}

func (tr *TestTracer) StartProject(t *Trace, p *Project, activity string) {
	tr.record("START", t, fmt.Sprintf("%s %s", activity, p), nil)
}

func (tr *TestTracer) DoneProject(t *Trace, p *Project, activity string, dt time.Duration) {
	tr.record("DONE", t, fmt.Sprintf("%s %s took %s", activity, p, dt), nil)
}

// Count returns the number of recorded messages with level.
func (tr *TestTracer) Count(level string) (n int) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	for _, m := range tr.msgs {
		if m.Level == level {
			n++
		}
	}
	return n
}

func (tr *TestTracer) Msgs() []TraceMsg {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return append([]TraceMsg(nil), tr.msgs...)
}

func (tr *TestTracer) record(level string, t *Trace, msg string, args []any) {
	tr.mu.Lock()
	tr.msgs = append(tr.msgs, TraceMsg{
		Level: level,
		Tag:   t.TopTag(),
		Msg:   msg,
		Args:  args,
	})
	tr.mu.Unlock()
	tr.T.Logf("shmk-%s %s: %s %v", level, t.TopTag(), msg, args)
}
