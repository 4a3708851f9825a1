package shmkore

import (
	"fmt"
	"slices"
	"sync"
)

// A Strategy is a recipe that turns the sources described by a target's
// scope into an artefact. Build is called with the project directory as
// working directory and returns the path of the produced artefact.
type Strategy interface {
	Name() string
	Build(tr *Trace, env *Env, scope *Scope) (artefact string, err error)
}

// Cleaner is implemented by strategies that can remove what they built.
type Cleaner interface {
	Clean(tr *Trace, scope *Scope, dryrun bool) error
}

// Registry maps project type identifiers to strategies. New recipes are added
// with [Registry.Register] without touching the dispatching code.
type Registry struct {
	mu   sync.RWMutex
	strs map[string]Strategy
}

func NewRegistry(strs ...Strategy) (*Registry, error) {
	reg := &Registry{strs: make(map[string]Strategy)}
	for _, s := range strs {
		if err := reg.Register(s); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func (reg *Registry) Register(s Strategy) error {
	name := s.Name()
	if name == "" {
		return fmt.Errorf("register strategy %T without name", s)
	}
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if reg.strs == nil {
		reg.strs = make(map[string]Strategy)
	}
	if _, ok := reg.strs[name]; ok {
		return fmt.Errorf("duplicate strategy for project type '%s'", name)
	}
	reg.strs[name] = s
	return nil
}

// Dispatch returns the strategy for projectType. Unknown and empty project
// types fail with an [UnknownProjectType] error.
func (reg *Registry) Dispatch(projectType string) (Strategy, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	if s, ok := reg.strs[projectType]; ok {
		return s, nil
	}
	return nil, UnknownProjectType(projectType)
}

func (reg *Registry) Names() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	ns := make([]string, 0, len(reg.strs))
	for n := range reg.strs {
		ns = append(ns, n)
	}
	slices.Sort(ns)
	return ns
}
