package shmk

import (
	"cmp"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"git.fractalqb.de/fractalqb/shmk/mkfs"
	"git.fractalqb.de/fractalqb/shmk/shmkore"
)

// Variables read by the [CSimple] strategy.
const (
	VarSrcFiles = "src_files"
	VarCompiler = "compiler"
	VarLinker   = "linker"
	VarCFlags   = "cflags"
	VarLFlags   = "lflags"
	VarBuildDir = "build_dir"
	VarBinDir   = "bin_dir"
)

const (
	CSimpleName     = "C-Simple"
	DefaultCompiler = "cc"
	DefaultBuildDir = "build"
	DefaultBinDir   = "bin"

	// FallbackBuildDir is used instead of DefaultBuildDir when build_dir is
	// not set and the project's "build" script occupies DefaultBuildDir.
	FallbackBuildDir = "obj"
)

// CSimple compiles each source file of a target into an object file and
// links all objects into one executable. The executable is named after the
// first source file.
type CSimple struct {
	// Compiler is used when a target does not set the compiler. Empty means
	// [DefaultCompiler].
	Compiler  string
	MkDirMode fs.FileMode
}

var (
	_ shmkore.Strategy = CSimple{}
	_ shmkore.Cleaner  = CSimple{}
)

func (CSimple) Name() string { return CSimpleName }

func (cs CSimple) Build(tr *shmkore.Trace, env *shmkore.Env, scope *shmkore.Scope) (string, error) {
	if err := scope.Require(tr, VarSrcFiles); err != nil {
		return "", err
	}
	pats := scope.List(VarSrcFiles)
	srcs := mkfs.Expand(tr, pats...)
	if len(srcs) == 0 {
		tr.Error("no source files match `patterns`", `patterns`, pats)
		return "", shmkore.ErrNoSources
	}
	cc := cmp.Or(scope.Get(VarCompiler), cs.Compiler, DefaultCompiler)
	ld := cmp.Or(scope.Get(VarLinker), cc)
	cflags := flags(scope, VarCFlags)
	lflags := flags(scope, VarLFlags)
	bdir, xdir := buildDirs(tr, scope)
	mkd := mkfs.MkDirs{MkDirMode: cs.MkDirMode, DryRun: env.DryRun}
	if err := mkd.Make(tr, bdir, xdir); err != nil {
		return "", err
	}

	objs := make([]string, 0, len(srcs))
	for _, src := range srcs {
		obj := mkfs.ObjectFile(bdir, src).Path()
		args := slices.Concat(cflags, []string{"-c", src, "-o", obj})
		tr.Info("compile `source` to `object`", `source`, src, `object`, obj)
		if out, err := Run(tr, env, cc, args...); err != nil || out.Failed() {
			return "", out.Failure(shmkore.StepCompile)
		}
		objs = append(objs, obj)
	}

	exe := ExecutableName(xdir, srcs[0])
	args := slices.Concat(objs, lflags, []string{"-o", exe})
	tr.Info("link `executable` from `objects`", `executable`, exe, `objects`, len(objs))
	if out, err := Run(tr, env, ld, args...); err != nil || out.Failed() {
		return "", out.Failure(shmkore.StepLink)
	}
	tr.Info("built `executable`", `executable`, exe)
	return exe, nil
}

// Clean removes the build and bin directories of the target.
func (CSimple) Clean(tr *shmkore.Trace, scope *shmkore.Scope, dryrun bool) error {
	bdir, xdir := buildDirs(tr, scope)
	return mkfs.RemoveDirs(tr, dryrun, bdir, xdir)
}

// ExecutableName returns the path of the executable linked from sources
// starting with src. It is src's base name without a ".c" suffix in dir.
func ExecutableName(dir, src string) string {
	return filepath.Join(dir, strings.TrimSuffix(filepath.Base(src), ".c"))
}

// buildDirs resolves the object and executable directories relative to the
// project directory.
func buildDirs(tr *shmkore.Trace, scope *shmkore.Scope) (build, bin string) {
	bin = cmp.Or(scope.Get(VarBinDir), DefaultBinDir)
	if build = scope.Get(VarBuildDir); build != "" {
		return build, bin
	}
	if st, err := os.Stat(DefaultBuildDir); err == nil && !st.IsDir() {
		tr.Warn("`default` is not a directory, objects go to `build_dir`",
			`default`, DefaultBuildDir,
			`build_dir`, FallbackBuildDir,
		)
		return FallbackBuildDir, bin
	}
	return DefaultBuildDir, bin
}

// flags returns the flags bound to name. A list is used as is. A string is
// split at white space and not expanded again.
func flags(scope *shmkore.Scope, name string) []string {
	v, ok := scope.Lookup(name)
	switch {
	case !ok:
		return nil
	case v.IsList():
		return v.List()
	}
	return strings.Fields(v.String())
}
