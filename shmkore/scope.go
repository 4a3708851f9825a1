package shmkore

import (
	"slices"
	"strings"
)

// Names of the variables shmk itself reads from a project's scripts.
const (
	VarProjectKind   = "project_kind"
	VarTargets       = "targets"
	VarDefaultTarget = "default_target"
	VarProjectType   = "project_type"
)

// Value is the value of a bound variable, either a scalar string or an
// ordered list of strings.
type Value struct {
	str    string
	list   []string
	isList bool
}

func StrValue(s string) Value { return Value{str: s} }

func ListValue(l ...string) Value { return Value{list: slices.Clone(l), isList: true} }

func (v Value) IsList() bool { return v.isList }

// String returns a scalar as is and a list joined by single spaces.
func (v Value) String() string {
	if v.isList {
		return strings.Join(v.list, " ")
	}
	return v.str
}

// List returns a list as is. A non-empty scalar is a list of one element and
// an empty scalar is the empty list.
func (v Value) List() []string {
	if v.isList {
		return slices.Clone(v.list)
	}
	if v.str == "" {
		return nil
	}
	return []string{v.str}
}

func (v Value) Empty() bool {
	if v.isList {
		return len(v.list) == 0
	}
	return v.str == ""
}

func (v Value) Equal(w Value) bool {
	if v.isList != w.isList {
		return false
	}
	if v.isList {
		return slices.Equal(v.list, w.list)
	}
	return v.str == w.str
}

// Scope is the set of variables bound by a project's scripts for one build
// invocation. A variable is either bound, possibly to an empty value, or
// unbound. Lookups never fail; use [Scope.Require] to insist on bindings.
type Scope struct {
	vars map[string]Value
}

func NewScope() *Scope {
	return &Scope{vars: make(map[string]Value)}
}

func (s *Scope) Set(name string, v Value) {
	if s.vars == nil {
		s.vars = make(map[string]Value)
	}
	s.vars[name] = v
}

func (s *Scope) Lookup(name string) (Value, bool) {
	v, ok := s.vars[name]
	return v, ok
}

func (s *Scope) IsSet(name string) bool {
	_, ok := s.vars[name]
	return ok
}

// Get returns the string value of name, which is "" if name is unbound.
func (s *Scope) Get(name string) string {
	return s.vars[name].String()
}

// GetOr returns dflt if name is unbound. Bound empty values are returned as
// they are.
func (s *Scope) GetOr(name, dflt string) string {
	if v, ok := s.vars[name]; ok {
		return v.String()
	}
	return dflt
}

func (s *Scope) List(name string) []string {
	return s.vars[name].List()
}

func (s *Scope) Names() []string {
	ns := make([]string, 0, len(s.vars))
	for n := range s.vars {
		ns = append(ns, n)
	}
	slices.Sort(ns)
	return ns
}

// Require checks that all names are bound. It fails with a [MissingConfig]
// error for the first unbound name.
func (s *Scope) Require(tr *Trace, names ...string) error {
	for _, n := range names {
		_, ok := s.vars[n]
		if tr != nil {
			tr.Debug("check required `variable` `bound`", `variable`, n, `bound`, ok)
		}
		if !ok {
			return MissingConfig(n)
		}
	}
	return nil
}
