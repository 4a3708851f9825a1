package shmkore

import (
	"errors"
	"slices"
	"testing"

	"git.fractalqb.de/fractalqb/testerr"
)

type nopStrategy string

func (s nopStrategy) Name() string { return string(s) }

func (s nopStrategy) Build(*Trace, *Env, *Scope) (string, error) {
	return "bin/" + string(s), nil
}

func TestRegistry_Dispatch(t *testing.T) {
	reg := testerr.F1(NewRegistry(nopStrategy("C-Simple"))).ShallBeNil(t)

	s := testerr.F1(reg.Dispatch("C-Simple")).ShallBeNil(t)
	if s.Name() != "C-Simple" {
		t.Errorf("dispatched to %s", s.Name())
	}

	for _, typ := range []string{"", "c-simple", "Go"} {
		_, err := reg.Dispatch(typ)
		if !errors.Is(err, ErrUnknownProjectType) {
			t.Errorf("dispatch '%s': %v", typ, err)
		}
	}
}

func TestRegistry_Register(t *testing.T) {
	reg := testerr.F1(NewRegistry()).ShallBeNil(t)
	testerr.F0(reg.Register(nopStrategy("B"))).ShallBeNil(t)
	testerr.F0(reg.Register(nopStrategy("A"))).ShallBeNil(t)
	if err := reg.Register(nopStrategy("A")); err == nil ||
		err.Error() != "duplicate strategy for project type 'A'" {
		t.Errorf("duplicate registration: %v", err)
	}
	if err := reg.Register(nopStrategy("")); err == nil ||
		err.Error() != "register strategy shmkore.nopStrategy without name" {
		t.Errorf("anonymous registration: %v", err)
	}
	if ns := reg.Names(); !slices.Equal(ns, []string{"A", "B"}) {
		t.Errorf("registered %v", ns)
	}
}

func TestCommandFailure_Is(t *testing.T) {
	err := error(CommandFailure{Step: StepCompile, Cmd: "cc -c x.c", Status: 1})
	if !errors.Is(err, ErrCompile) {
		t.Error("compile failure is no ErrCompile")
	}
	if errors.Is(err, ErrLink) {
		t.Error("compile failure is ErrLink")
	}
	if !errors.Is(err, CommandFailure{}) {
		t.Error("compile failure is no CommandFailure")
	}
	if IsConfigError(err) {
		t.Error("compile failure is config error")
	}
	if msg := err.Error(); msg != "compile failed with exit status 1: cc -c x.c" {
		t.Errorf("message '%s'", msg)
	}
}

func TestIsConfigError(t *testing.T) {
	for _, err := range []error{
		MissingConfig("targets"),
		InvalidTarget{Target: "debug", Targets: []string{"release"}},
		UnknownProjectType("Go"),
		FileNotFound{Path: "build", Err: ErrNotExecutable},
		ErrNoSources,
	} {
		if !IsConfigError(err) {
			t.Errorf("not a config error: %v", err)
		}
	}
	if msg := (InvalidTarget{Target: "debug", Targets: []string{"release", "test"}}).Error(); msg != "target 'debug' not in declared targets [release, test]" {
		t.Errorf("message '%s'", msg)
	}
}
