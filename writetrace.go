package shmk

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"git.fractalqb.de/fractalqb/shmk/shmkore"
	"git.fractalqb.de/fractalqb/sllm/v3"
)

// WriteTracer writes plain text lines to W. Errors are always written, all
// other messages depend on Log.
type WriteTracer struct {
	W   io.Writer
	Log shmkore.TraceLog

	mu  sync.Mutex
	buf bytes.Buffer
}

var _ shmkore.Tracer = (*WriteTracer)(nil)

func DefaultTracer() shmkore.Tracer {
	return &WriteTracer{W: os.Stderr, Log: shmkore.DefaultTraceLog}
}

func (tr *WriteTracer) Debug(t *shmkore.Trace, msg string, args ...any) {
	if tr.Log.Debug() {
		tr.msg(t, "DEBUG", msg, args)
	}
}

func (tr *WriteTracer) Info(t *shmkore.Trace, msg string, args ...any) {
	if tr.Log.Info() {
		tr.msg(t, "INFO ", msg, args)
	}
}

func (tr *WriteTracer) Warn(t *shmkore.Trace, msg string, args ...any) {
	if tr.Log.Warn() {
		tr.msg(t, "WARN ", msg, args)
	}
}

func (tr *WriteTracer) Error(t *shmkore.Trace, msg string, args ...any) {
	tr.msg(t, "ERROR", msg, args)
}

func (tr *WriteTracer) StartProject(t *shmkore.Trace, p *shmkore.Project, activity string) {
	if !tr.Log.Info() {
		return
	}
	tr.mu.Lock()
	defer tr.mu.Unlock()
	fmt.Fprintf(tr.W, "%s\t{ %s project '%s' in %s\n",
		t.TopTag(),
		activity,
		p,
		p.Dir,
	)
}

func (tr *WriteTracer) DoneProject(t *shmkore.Trace, p *shmkore.Project, activity string, dt time.Duration) {
	if !tr.Log.Info() {
		return
	}
	tr.mu.Lock()
	defer tr.mu.Unlock()
	fmt.Fprintf(tr.W, "%s\t} %s project '%s' took %s\n",
		t.TopTag(),
		activity,
		p,
		dt,
	)
}

func (tr *WriteTracer) msg(t *shmkore.Trace, level, msg string, args []any) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.buf.Reset()
	fmt.Fprintf(&tr.buf, "%s\t  %s ", t.TopTag(), level)
	sllm.Fprint(&tr.buf, msg, sllmArgs(args).append)
	tr.buf.WriteByte('\n')
	tr.W.Write(tr.buf.Bytes())
}

type sllmArgs []any

func (as sllmArgs) append(buf []byte, _ int, n string) ([]byte, error) {
	for len(as) > 0 {
		switch k := as[0].(type) {
		case string:
			if len(as) == 1 {
				return buf, fmt.Errorf("no value for key '%s'", n)
			}
			if k == n {
				return sllm.AppendArg(buf, as[1]), nil
			}
			as = as[2:]
		case slog.Attr:
			if k.Key == n {
				return sllm.AppendArg(buf, k.Value), nil
			}
			as = as[1:]
		default:
			return buf, fmt.Errorf("illegal key type %T", k)
		}
	}
	return buf, fmt.Errorf("no key '%s", n)
}
