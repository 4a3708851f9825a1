package shmk

import (
	"sync"
	"time"

	"git.fractalqb.de/fractalqb/shmk/shmkore"
)

// DefaultRegistry returns a registry with all strategies shmk knows.
func DefaultRegistry() *shmkore.Registry {
	reg, err := shmkore.NewRegistry(CSimple{})
	if err != nil {
		panic(err)
	}
	return reg
}

// Builder builds projects with the strategies in its registry. Builds of one
// Builder are serialized because they change the process' working directory.
type Builder struct {
	Env        *shmkore.Env
	Strategies *shmkore.Registry

	lock sync.Mutex
}

func NewBuilder(env *shmkore.Env, reg *shmkore.Registry) *Builder {
	if reg == nil {
		reg = DefaultRegistry()
	}
	return &Builder{Env: env, Strategies: reg}
}

// Dir loads the project in dir and builds target, or the project's default
// target if target is empty. It returns the path of the built artefact
// relative to dir.
func (bd *Builder) Dir(tr *shmkore.Trace, dir, target string) (string, error) {
	prj, err := LoadProject(tr, bd.env(tr), dir, target)
	if err != nil {
		return "", err
	}
	return bd.Project(tr, prj)
}

// Project builds the loaded project prj. The working directory is changed to
// the project directory and restored before Project returns. If the scripts
// define the pre-build hook of the selected target, it is called before the
// strategy for the target's project type runs.
func (bd *Builder) Project(tr *shmkore.Trace, prj *shmkore.Project) (artefact string, err error) {
	err = bd.inProject(tr, prj, "build", func(tr *shmkore.Trace, env *shmkore.Env) error {
		if prj.Hooks != nil && prj.Hooks.HasHook(prj.PreHook()) {
			if err := prj.Hooks.RunHook(tr, env, prj.PreHook()); err != nil {
				return err
			}
		}
		str, err := bd.strategy(tr, prj)
		if err != nil {
			return err
		}
		artefact, err = str.Build(tr, env, prj.Scope)
		return err
	})
	return artefact, err
}

// Clean removes what the strategy of prj's target builds. Strategies that do
// not implement [shmkore.Cleaner] are skipped with a warning.
func (bd *Builder) Clean(tr *shmkore.Trace, prj *shmkore.Project) error {
	return bd.inProject(tr, prj, "clean", func(tr *shmkore.Trace, env *shmkore.Env) error {
		str, err := bd.strategy(tr, prj)
		if err != nil {
			return err
		}
		if c, ok := str.(shmkore.Cleaner); ok {
			return c.Clean(tr, prj.Scope, env.DryRun)
		}
		tr.Warn("`strategy` cannot clean", `strategy`, str.Name())
		return nil
	})
}

// Batch runs cmds with [RunAll] in the project directory of prj. Variables
// exported by the project's scripts are in the commands' environment.
func (bd *Builder) Batch(tr *shmkore.Trace, prj *shmkore.Project, cmds ...string) (b *Batch, err error) {
	err = bd.inProject(tr, prj, "batch", func(tr *shmkore.Trace, env *shmkore.Env) error {
		b = RunAll(tr, env, cmds...)
		return b.Err()
	})
	return b, err
}

func (bd *Builder) inProject(
	tr *shmkore.Trace,
	prj *shmkore.Project,
	activity string,
	do func(*shmkore.Trace, *shmkore.Env) error,
) error {
	bd.lock.Lock()
	defer bd.lock.Unlock()

	tr = tr.Project(prj)
	start := time.Now()
	tr.StartProject(prj, activity)
	wd, err := Cd(tr, prj.Dir)
	if err != nil {
		return err
	}
	defer wd.Back()
	env := bd.env(tr).Sub()
	env.SetTagsMap(prj.Exports)
	if err = do(tr, env); err != nil {
		return err
	}
	tr.DoneProject(prj, activity, time.Since(start))
	return nil
}

func (bd *Builder) strategy(tr *shmkore.Trace, prj *shmkore.Project) (shmkore.Strategy, error) {
	ptype := prj.Scope.Get(shmkore.VarProjectType)
	str, err := bd.Strategies.Dispatch(ptype)
	if err != nil {
		return nil, err
	}
	tr.Debug("dispatch `project_type` to `strategy`",
		`project_type`, ptype,
		`strategy`, str.Name(),
	)
	return str, nil
}

func (bd *Builder) env(tr *shmkore.Trace) *shmkore.Env {
	if bd.Env == nil {
		bd.Env = shmkore.DefaultEnv(tr)
	}
	return bd.Env
}
