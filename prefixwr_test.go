package shmk

import (
	"bytes"
	"io"
	"math/rand/v2"
	"os"
	"strings"
	"sync"
	"testing"
)

func Example_prefixWriter() {
	pw := newPrefixWriterString(os.Stdout, "PRE:")
	io.WriteString(pw, "foo")
	io.WriteString(pw, "bar\n")
	io.WriteString(pw, "baz\nquux")
	// Output:
	// PRE:foobar
	// PRE:baz
	// PRE:quux
}

func TestPrefixWriter_lines(t *testing.T) {
	var (
		buf bytes.Buffer
		mu  sync.Mutex
		wg  sync.WaitGroup
	)
	out := lockedWriter{mu: &mu, w: &buf}
	for i := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pw := newPrefixWriterString(out, strings.Repeat("x", i+1)+":")
			for range 50 {
				io.WriteString(pw, "line\n")
			}
		}()
	}
	wg.Wait()
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 200 {
		t.Fatalf("%d lines, want 200", len(lines))
	}
	for _, l := range lines {
		pre, txt, ok := strings.Cut(l, ":")
		if !ok || txt != "line" || strings.Trim(pre, "x") != "" {
			t.Errorf("torn line '%s'", l)
		}
	}
}

const (
	benchLineMin = 40
	benchLineMax = 180
)

var benchLine = append([]byte("test"), strings.Repeat(" test", (benchLineMax-4)/5+1)...)

func BenchmarkWrite(b *testing.B) {
	var c byte
	var buf bytes.Buffer
	randN := benchLineMax - benchLineMin
	for range b.N {
		buf.Reset()
		lno := 5 + rand.IntN(15)
		for range lno {
			len := benchLineMin + rand.IntN(randN)
			c, benchLine[len-1] = benchLine[len-1], '\n'
			buf.Write(benchLine[:len])
			benchLine[len-1] = c
		}
	}
}

func BenchmarkPrefixWriter(b *testing.B) {
	var c byte
	var buf bytes.Buffer
	randN := benchLineMax - benchLineMin
	for range b.N {
		buf.Reset()
		pfw := newPrefixWriterString(&buf, "Prefix:")
		lno := 5 + rand.IntN(15)
		for range lno {
			len := benchLineMin + rand.IntN(randN)
			c, benchLine[len-1] = benchLine[len-1], '\n'
			pfw.Write(benchLine[:len])
			benchLine[len-1] = c
		}
	}
}
