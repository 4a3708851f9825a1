package shmkore

import (
	"fmt"
	"io"
	"maps"
	"os"
	"strings"
)

// Env is the environment commands are run in. Tags become the environment
// variables of spawned processes. Sub environments inherit the tags of their
// parent and may override them.
type Env struct {
	In       io.Reader
	Out, Err io.Writer

	// DryRun only traces commands instead of running them.
	DryRun bool

	tags    map[string]string
	xenv    []string
	xenvErr error
	parent  *Env
}

func DefaultEnv(tr *Trace) *Env {
	env := &Env{
		In:   os.Stdin,
		Out:  os.Stdout,
		Err:  os.Stderr,
		tags: make(map[string]string),
	}
	for _, evar := range os.Environ() {
		kv := strings.SplitN(evar, "=", 2)
		if len(kv) == 0 || kv[0] == "" {
			if tr != nil {
				tr.Warn("ignoring default `env`", `env`, evar)
			}
			continue
		}
		switch len(kv) {
		case 1:
			env.tags[kv[0]] = ""
		default:
			env.tags[kv[0]] = kv[1]
		}
	}
	return env
}

func (e *Env) Sub() *Env {
	return &Env{
		In: e.In, Out: e.Out, Err: e.Err,
		DryRun: e.DryRun,
		parent: e,
	}
}

func (e *Env) Tag(key string) (string, bool) {
	for e != nil {
		if e.tags != nil {
			if v, ok := e.tags[key]; ok {
				return v, true
			}
		}
		e = e.parent
	}
	return "", false
}

// Getenv is like [Env.Tag] but drops the ok flag, as needed for shell
// expansion callbacks.
func (e *Env) Getenv(key string) string {
	v, _ := e.Tag(key)
	return v
}

func (e *Env) SetTag(key, val string) {
	if e.tags == nil {
		e.tags = make(map[string]string)
	}
	e.tags[key] = val
	e.clearXEnv()
}

// SetTags sets tags from "key=value" strings. A string without '=' sets the
// key to the empty value.
func (e *Env) SetTags(env ...string) {
	if e.tags == nil {
		e.tags = make(map[string]string)
	}
	for _, evar := range env {
		kv := strings.SplitN(evar, "=", 2)
		switch len(kv) {
		case 1:
			e.tags[kv[0]] = ""
		case 2:
			e.tags[kv[0]] = kv[1]
		}
	}
	e.clearXEnv()
}

func (e *Env) SetTagsMap(tags map[string]string) {
	if e.tags == nil {
		e.tags = make(map[string]string)
	}
	maps.Copy(e.tags, tags)
	e.clearXEnv()
}

type NonXEnvKeys []string

func (e NonXEnvKeys) Error() string {
	return fmt.Sprintf("illegal exec env keys: %s", strings.Join(e, ", "))
}

func (NonXEnvKeys) Is(target error) bool {
	_, ok := target.(NonXEnvKeys)
	return ok
}

// ExecEnv returns the environment for [os/exec.Cmd]. Tags that cannot be
// passed to a process are left out and reported with a [NonXEnvKeys] error.
func (e *Env) ExecEnv() ([]string, error) {
	if e.xenv == nil {
		var errKeys []string
		for k, v := range e.mergedTags() {
			switch {
			case k == "":
				errKeys = append(errKeys, `""`)
			case strings.ContainsRune(k, '='):
				errKeys = append(errKeys, k)
			default:
				tmp := fmt.Sprintf("%s=%s", k, v)
				e.xenv = append(e.xenv, tmp)
			}
		}
		if len(errKeys) > 0 {
			e.xenvErr = NonXEnvKeys(errKeys)
		}
	}
	return e.xenv, e.xenvErr
}

func (e *Env) clearXEnv() {
	e.xenv = nil
	e.xenvErr = nil
}

func (e *Env) mergedTags() map[string]string {
	if e.parent == nil {
		return maps.Clone(e.tags)
	}
	mts := e.parent.mergedTags()
	if mts == nil {
		mts = make(map[string]string, len(e.tags))
	}
	maps.Copy(mts, e.tags)
	return mts
}
