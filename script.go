package shmk

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"git.fractalqb.de/fractalqb/shmk/shmkore"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// script interprets the build scripts of one project. The interpreter keeps
// variables and functions across the sourced files, so a target script sees
// what the configuration script defined. Only variables that differ from the
// interpreter's initial environment make it into the [shmkore.Scope].
type script struct {
	runner *interp.Runner
	base   map[string]expand.Variable
}

var _ shmkore.Hooks = (*script)(nil)

func newScript(tr *shmkore.Trace, env *shmkore.Env, dir string) (*script, error) {
	xenv, err := env.ExecEnv()
	if err != nil {
		tr.Warn(err.Error(), `dir`, dir)
	}
	var senv expand.Environ
	if xenv != nil {
		senv = expand.ListEnviron(xenv...)
	}
	r, err := interp.New(
		interp.Dir(dir),
		interp.Env(senv),
		interp.StdIO(env.In, env.Out, env.Err),
	)
	if err != nil {
		return nil, err
	}
	if err = r.Run(tr.Ctx(), &syntax.File{}); err != nil {
		return nil, err
	}
	s := &script{
		runner: r,
		base:   maps.Clone(r.Vars),
	}
	return s, nil
}

// source runs the script file path and returns the resulting scope. Only an
// explicit non-zero exit fails, a failing last command does not.
func (s *script) source(tr *shmkore.Trace, path string) (*shmkore.Scope, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, shmkore.FileNotFound{Path: path, Err: err}
	}
	defer f.Close()
	prog, err := syntax.NewParser().Parse(f, path)
	if err != nil {
		return nil, shmkore.BadScript{Path: path, Err: err}
	}
	clear(s.runner.Vars)
	tr.Debug("source `script`", `script`, path)
	if err = s.runner.Run(tr.Ctx(), prog); err != nil {
		st, ok := interp.IsExitStatus(err)
		switch {
		case !ok:
			return nil, shmkore.BadScript{Path: path, Err: err}
		case s.runner.Exited():
			return nil, shmkore.BadScript{
				Path: path,
				Err:  fmt.Errorf("exit status %d", st),
			}
		}
		tr.Debug("`script` ends with `status`", `script`, path, `status`, st)
	}
	return s.scope(tr), nil
}

func (s *script) scope(tr *shmkore.Trace) *shmkore.Scope {
	scope := shmkore.NewScope()
	for n, v := range s.runner.Vars {
		if !v.IsSet() {
			continue
		}
		if b, ok := s.base[n]; ok && sameVar(b, v) {
			continue
		}
		switch v.Kind {
		case expand.String:
			scope.Set(n, shmkore.StrValue(v.Str))
		case expand.Indexed:
			scope.Set(n, shmkore.ListValue(v.List...))
		default:
			tr.Debug("ignore `variable` of `kind`", `variable`, n, `kind`, v.Kind)
		}
	}
	return scope
}

// exports returns the exported variables the scripts set.
func (s *script) exports() map[string]string {
	xs := make(map[string]string)
	for n, v := range s.runner.Vars {
		if !v.IsSet() || !v.Exported || v.Kind != expand.String {
			continue
		}
		if b, ok := s.base[n]; ok && sameVar(b, v) {
			continue
		}
		xs[n] = v.Str
	}
	return xs
}

func sameVar(a, b expand.Variable) bool {
	if a.Kind != b.Kind || a.Exported != b.Exported {
		return false
	}
	switch a.Kind {
	case expand.Indexed:
		return slices.Equal(a.List, b.List)
	case expand.Associative:
		return maps.Equal(a.Map, b.Map)
	}
	return a.Str == b.Str
}

func (s *script) HasHook(name string) bool {
	return s.runner.Funcs[name] != nil
}

// RunHook calls the shell function name in the project directory. The hook
// sees all variables and functions of the sourced scripts.
func (s *script) RunHook(tr *shmkore.Trace, env *shmkore.Env, name string) error {
	if !s.HasHook(name) {
		return nil
	}
	call := &syntax.CallExpr{Args: []*syntax.Word{
		{Parts: []syntax.WordPart{&syntax.Lit{Value: name}}},
	}}
	tr.Debug("call `hook`", `hook`, name)
	if env.DryRun {
		tr.Info("dry-run `hook`", `hook`, name)
		return nil
	}
	err := s.runner.Run(tr.Ctx(), call)
	if err == nil {
		return nil
	}
	fail := shmkore.CommandFailure{Step: shmkore.StepHook, Cmd: name, Status: -1}
	if st, ok := interp.IsExitStatus(err); ok {
		fail.Status = int(st)
	} else {
		fail.Err = err
	}
	tr.Error("`hook` failed: `error`", `hook`, name, `error`, fail)
	return fail
}
