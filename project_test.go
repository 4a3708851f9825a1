package shmk

import (
	"os"
	"path/filepath"
	"testing"

	"git.fractalqb.de/fractalqb/testerr"
)

const helloBuild = `project_kind="C-Simple"
targets="release, debug"
default_target="release"
`

const helloRelease = `project_type="C-Simple"
src_files=("main.c")
`

const helloMain = `int main(void) { return 0; }
`

// testProject writes files to a new temporary directory. Files named
// "build" are made executable.
func testProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		testerr.F0(os.MkdirAll(filepath.Dir(path), 0777)).ShallBeNil(t)
		mode := os.FileMode(0666)
		if filepath.Base(name) == "build" {
			mode = 0777
		}
		testerr.F0(os.WriteFile(path, []byte(content), mode)).ShallBeNil(t)
	}
	return dir
}

func helloProject(t *testing.T) string {
	return testProject(t, map[string]string{
		"build":          helloBuild,
		"release.target": helloRelease,
		"main.c":         helloMain,
	})
}

// fakeCC is a compiler and linker that writes its arguments into the output
// file given with -o. It fails for sources containing "error".
const fakeCC = `#!/bin/sh
out=
for a in "$@"; do
  case "$prev" in -o) out="$a";; esac
  prev="$a"
  case "$a" in *.c) grep -q error "$a" && exit 1;; esac
done
[ -n "$out" ] || exit 2
echo "$@" > "$out"
`

func installFakeCC(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fakecc")
	testerr.F0(os.WriteFile(path, []byte(fakeCC), 0777)).ShallBeNil(t)
	return path
}
