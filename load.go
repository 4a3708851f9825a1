package shmk

import (
	"cmp"
	"errors"
	"os"
	"slices"
	"strings"

	"git.fractalqb.de/fractalqb/shmk/shmkore"
)

// LoadProject loads the configuration script of the project in dir and the
// script of the selected target. The selected target is target, or the
// project's default target if target is empty. All validation happens here,
// before anything is built or the working directory is changed.
func LoadProject(tr *shmkore.Trace, env *shmkore.Env, dir, target string) (*shmkore.Project, error) {
	prj, scr, err := loadConfig(tr, env, dir)
	if err != nil {
		return nil, err
	}
	prj.Target = cmp.Or(target, prj.Default)
	if !slices.Contains(prj.Targets, prj.Target) {
		return nil, shmkore.InvalidTarget{Target: prj.Target, Targets: prj.Targets}
	}
	tgts := prj.TargetScript()
	if err := checkFile(tgts, false); err != nil {
		return nil, err
	}
	if prj.Scope, err = scr.source(tr, tgts); err != nil {
		return nil, err
	}
	prj.Exports = scr.exports()
	tr.Debug("loaded `target` with `variables`",
		`target`, prj.Target,
		`variables`, prj.Scope.Names(),
	)
	return prj, nil
}

// LoadConfig loads only the configuration script of the project in dir. The
// returned project has no target selected.
func LoadConfig(tr *shmkore.Trace, env *shmkore.Env, dir string) (*shmkore.Project, error) {
	prj, _, err := loadConfig(tr, env, dir)
	return prj, err
}

func loadConfig(tr *shmkore.Trace, env *shmkore.Env, dir string) (*shmkore.Project, *script, error) {
	prj := &shmkore.Project{Dir: dir}
	cfg := prj.ConfigScript()
	if err := checkFile(cfg, true); err != nil {
		return nil, nil, err
	}
	scr, err := newScript(tr, env, dir)
	if err != nil {
		return nil, nil, err
	}
	scope, err := scr.source(tr, cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := scope.Require(tr, shmkore.VarTargets); err != nil {
		return nil, nil, err
	}
	tv, _ := scope.Lookup(shmkore.VarTargets)
	if prj.Targets = SplitTargets(tv); len(prj.Targets) == 0 {
		return nil, nil, shmkore.MissingConfig(shmkore.VarTargets)
	}
	if err := scope.Require(tr, shmkore.VarDefaultTarget); err != nil {
		return nil, nil, err
	}
	prj.Default = scope.Get(shmkore.VarDefaultTarget)
	if err := scope.Require(tr, shmkore.VarProjectKind); err != nil {
		return nil, nil, err
	}
	prj.Kind = scope.Get(shmkore.VarProjectKind)
	prj.Scope = scope
	prj.Hooks = scr
	return prj, scr, nil
}

// SplitTargets returns the declared targets in declaration order. Each
// element of v is split at commas, entries are trimmed and empty entries
// dropped. Duplicates are removed, keeping the first occurrence.
func SplitTargets(v shmkore.Value) (ts []string) {
	for _, e := range v.List() {
		for _, t := range strings.Split(e, ",") {
			t = strings.TrimSpace(t)
			if t != "" && !slices.Contains(ts, t) {
				ts = append(ts, t)
			}
		}
	}
	return ts
}

func checkFile(path string, exe bool) error {
	st, err := os.Stat(path)
	switch {
	case err != nil:
		return shmkore.FileNotFound{Path: path, Err: err}
	case st.IsDir():
		return shmkore.FileNotFound{Path: path, Err: errIsDir}
	case exe && st.Mode().Perm()&0111 == 0:
		return shmkore.FileNotFound{Path: path, Err: shmkore.ErrNotExecutable}
	}
	return nil
}

var errIsDir = errors.New("is a directory")
