package shmkore

import (
	"errors"
	"slices"
	"testing"

	"git.fractalqb.de/fractalqb/testerr"
)

func TestScope_Lookup(t *testing.T) {
	s := NewScope()
	s.Set("empty", StrValue(""))
	s.Set("null", StrValue("@null"))
	s.Set("srcs", ListValue("a.c", "b.c"))

	if _, ok := s.Lookup("nope"); ok {
		t.Error("unbound variable found")
	}
	if v, ok := s.Lookup("empty"); !ok {
		t.Error("empty variable not bound")
	} else if !v.Empty() {
		t.Errorf("empty variable has value '%s'", v)
	}
	if v, ok := s.Lookup("null"); !ok || v.String() != "@null" {
		t.Errorf("sentinel text is not an ordinary value: '%s' %t", v, ok)
	}
	if l := s.List("srcs"); !slices.Equal(l, []string{"a.c", "b.c"}) {
		t.Errorf("list value %v", l)
	}
	if v := s.Get("srcs"); v != "a.c b.c" {
		t.Errorf("list as string '%s'", v)
	}
	if l := s.List("nope"); l != nil {
		t.Errorf("unbound list %v", l)
	}
}

func TestScope_GetOr(t *testing.T) {
	s := NewScope()
	s.Set("cflags", StrValue(""))
	if v := s.GetOr("cflags", "-O2"); v != "" {
		t.Errorf("bound empty value replaced by default '%s'", v)
	}
	if v := s.GetOr("lflags", "-lm"); v != "-lm" {
		t.Errorf("default not used for unbound: '%s'", v)
	}
}

func TestScope_Require(t *testing.T) {
	tr, tt := NewTestTrace(t)
	s := NewScope()
	s.Set(VarTargets, StrValue("release"))
	s.Set(VarProjectKind, StrValue(""))

	testerr.F0(s.Require(tr, VarTargets, VarProjectKind)).ShallBeNil(t)

	err := s.Require(tr, VarTargets, VarDefaultTarget, "src_files")
	if !errors.Is(err, ErrMissingConfig) {
		t.Fatalf("unexpected error: %v", err)
	}
	if err != MissingConfig(VarDefaultTarget) {
		t.Errorf("wrong missing variable: %v", err)
	}
	if n := tt.Count("DEBUG"); n != 4 {
		t.Errorf("%d checks traced, want 4", n)
	}
}

func TestValue_List(t *testing.T) {
	if l := StrValue("main.c").List(); !slices.Equal(l, []string{"main.c"}) {
		t.Errorf("scalar as list: %v", l)
	}
	if l := StrValue("").List(); len(l) != 0 {
		t.Errorf("empty scalar as list: %v", l)
	}
	if !ListValue().Empty() {
		t.Error("empty list not empty")
	}
	if StrValue("a").Equal(ListValue("a")) {
		t.Error("scalar equals list")
	}
}
