package mkfs

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"git.fractalqb.de/fractalqb/shmk/shmkore"
	"git.fractalqb.de/fractalqb/testerr"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	cwd := testerr.F1(os.Getwd()).ShallBeNil(t)
	testerr.F0(os.Chdir(dir)).ShallBeNil(t)
	t.Cleanup(func() { os.Chdir(cwd) })
}

func touch(t *testing.T, files ...string) {
	t.Helper()
	for _, f := range files {
		testerr.F0(os.MkdirAll(filepath.Dir(f), 0777)).ShallBeNil(t)
		testerr.F0(os.WriteFile(f, nil, 0666)).ShallBeNil(t)
	}
}

func srcTree(t *testing.T) {
	chdir(t, t.TempDir())
	touch(t,
		"main.c",
		"util.c",
		"util.h",
		"src/a.c",
		"src/deep/b.c",
		"src/deep/main.c",
	)
	testerr.F0(os.Mkdir("dir.c", 0777)).ShallBeNil(t)
}

func TestExpandPattern(t *testing.T) {
	srcTree(t)
	for _, c := range []struct {
		pattern string
		want    []string
	}{
		{"main.c", []string{"main.c"}},
		{"missing.c", nil},
		{"*.c", []string{"main.c", "util.c"}},
		{"util.?", []string{"util.c", "util.h"}},
		{"[mu]*.c", []string{"main.c", "util.c"}},
		{"src/*.c", []string{"src/a.c"}},
		{"{main,util}.c", []string{"main.c", "util.c"}},
		{"**/main.c", []string{"main.c", "src/deep/main.c"}},
		{"**/*.c", []string{"main.c", "src/a.c", "src/deep/b.c", "src/deep/main.c", "util.c"}},
		{"nowhere/**/b.c", []string{"src/deep/b.c"}},
		{"*.go", nil},
		{"", nil},
	} {
		t.Run(c.pattern, func(t *testing.T) {
			got := testerr.F1(ExpandPattern(c.pattern)).ShallBeNil(t)
			if !slices.Equal(got, c.want) {
				t.Errorf("got %v, want %v", got, c.want)
			}
		})
	}
}

func TestExpandPattern_idempotent(t *testing.T) {
	srcTree(t)
	first := testerr.F1(ExpandPattern("**/*.c")).ShallBeNil(t)
	second := testerr.F1(ExpandPattern("**/*.c")).ShallBeNil(t)
	if !slices.Equal(first, second) {
		t.Errorf("second expansion %v differs from %v", second, first)
	}
}

func TestExpand(t *testing.T) {
	srcTree(t)
	tr, tt := shmkore.NewTestTrace(t)
	got := Expand(tr, "util.c", "*.x", "*.c", "src/*.c")
	want := []string{"util.c", "main.c", "src/a.c"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if n := tt.Count("WARN"); n != 1 {
		t.Errorf("%d warnings, want 1", n)
	}
}

func TestExpand_nothing(t *testing.T) {
	srcTree(t)
	tr, tt := shmkore.NewTestTrace(t)
	if got := Expand(tr, "*.cpp", "**/*.cc"); len(got) != 0 {
		t.Errorf("unexpected match %v", got)
	}
	if n := tt.Count("WARN"); n != 2 {
		t.Errorf("%d warnings, want 2", n)
	}
}

func TestIsRecursive(t *testing.T) {
	for p, want := range map[string]bool{
		"**/x.c":    true,
		"src/**/*":  true,
		"src/**":    true,
		"a**b.c":    false,
		"*.c":       false,
		"src/*/x.c": false,
	} {
		if got := IsRecursive(p); got != want {
			t.Errorf("IsRecursive(%s) = %t", p, got)
		}
	}
}
