package shmk

import (
	"bytes"
	"io"
	"sync"
)

// prefixWriter puts prefix in front of every line written to w. Each call
// to Write results in exactly one Write to w, so that lines from different
// prefixWriters sharing a [lockedWriter] do not get torn apart.
type prefixWriter struct {
	w      io.Writer
	prefix []byte
	inLine bool // not at start of line (zero…)
	buf    []byte
}

func newPrefixWriterString(w io.Writer, prefix string) *prefixWriter {
	return &prefixWriter{w: w, prefix: []byte(prefix)}
}

func (pw *prefixWriter) Write(p []byte) (n int, err error) {
	pw.buf = pw.buf[:0]
	for len(p) > 0 {
		if !pw.inLine {
			pw.buf = append(pw.buf, pw.prefix...)
		}
		nlIdx := bytes.IndexByte(p, '\n')
		if nlIdx < 0 {
			pw.buf = append(pw.buf, p...)
			pw.inLine = true
			n += len(p)
			break
		}
		nlIdx++
		pw.buf = append(pw.buf, p[:nlIdx]...)
		n += nlIdx
		pw.inLine = false
		p = p[nlIdx:]
	}
	if len(pw.buf) == 0 {
		return n, nil
	}
	if _, err := pw.w.Write(pw.buf); err != nil {
		return 0, err
	}
	return n, nil
}

type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (lw lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}
