package shmkore

import (
	"path/filepath"
)

const (
	// ConfigScript is the name of a project's configuration script.
	ConfigScript = "build"
	// TargetExt is appended to a target's name to get its script name.
	TargetExt = ".target"
	// PreHookSuffix is appended to a target's name to get the name of the
	// pre-build hook function.
	PreHookSuffix = "_pre"
)

// Hooks runs lifecycle hook functions defined by a project's scripts.
type Hooks interface {
	HasHook(name string) bool
	RunHook(tr *Trace, env *Env, name string) error
}

// Project is a project directory with its selected target resolved and
// validated. It is built once and must not be kept across builds.
type Project struct {
	Dir     string
	Kind    string
	Targets []string
	Default string
	Target  string

	Scope   *Scope
	Exports map[string]string
	Hooks   Hooks
}

func (prj *Project) String() string {
	tmp := prj.Dir
	if tmp == "" || tmp == "." {
		tmp, _ = filepath.Abs(tmp)
	}
	return filepath.Base(tmp) + ":" + prj.Target
}

func (prj *Project) ConfigScript() string {
	return filepath.Join(prj.Dir, ConfigScript)
}

func (prj *Project) TargetScript() string {
	return TargetScript(prj.Dir, prj.Target)
}

func (prj *Project) PreHook() string { return prj.Target + PreHookSuffix }

func TargetScript(dir, target string) string {
	return filepath.Join(dir, target+TargetExt)
}
