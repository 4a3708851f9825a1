package shmk

import (
	"errors"
	"strings"
	"testing"

	"git.fractalqb.de/fractalqb/shmk/shmkore"
	"git.fractalqb.de/fractalqb/testerr"
)

func TestRun(t *testing.T) {
	tr, tt := shmkore.NewTestTrace(t)
	var out strings.Builder
	env := &shmkore.Env{Out: &out}
	res := testerr.F1(Run(tr, env, "echo", "hello", "world")).ShallBeNil(t)
	if res.Failed() {
		t.Fatalf("echo failed: %+v", res)
	}
	if s := out.String(); s != "hello world\n" {
		t.Errorf("bad output '%s'", s)
	}
	if res.Failure(shmkore.StepCompile) != nil {
		t.Error("failure for successful command")
	}
	if n := tt.Count("ERROR"); n != 0 {
		t.Errorf("%d errors traced", n)
	}
}

func TestRun_status(t *testing.T) {
	tr, tt := shmkore.NewTestTrace(t)
	res := testerr.F1(Run(tr, &shmkore.Env{}, "sh", "-c", "exit 3")).ShallBeNil(t)
	if !res.Failed() || res.Status != 3 {
		t.Fatalf("unexpected outcome %+v", res)
	}
	err := res.Failure(shmkore.StepLink)
	if !errors.Is(err, shmkore.ErrLink) {
		t.Errorf("wrong failure %v", err)
	}
	if n := tt.Count("ERROR"); n != 1 {
		t.Errorf("%d errors traced, want 1", n)
	}
}

func TestRun_noExe(t *testing.T) {
	tr, _ := shmkore.NewTestTrace(t)
	res, err := Run(tr, &shmkore.Env{}, "./does-not-exist-shmk")
	if err == nil {
		t.Fatal("no error for missing executable")
	}
	if res.Status != -1 || !res.Failed() {
		t.Errorf("unexpected outcome %+v", res)
	}
}

func TestRun_dryRun(t *testing.T) {
	tr, tt := shmkore.NewTestTrace(t)
	res := testerr.F1(Run(tr, &shmkore.Env{DryRun: true}, "false")).ShallBeNil(t)
	if res.Failed() {
		t.Error("dry-run command failed")
	}
	if n := tt.Count("INFO"); n != 1 {
		t.Errorf("%d infos traced, want 1", n)
	}
}

func TestRun_env(t *testing.T) {
	tr, _ := shmkore.NewTestTrace(t)
	var out strings.Builder
	env := (&shmkore.Env{Out: &out}).Sub()
	env.SetTags("SHMK_TEST=4711")
	testerr.F1(Run(tr, env, "sh", "-c", "echo $SHMK_TEST")).ShallBeNil(t)
	if s := out.String(); s != "4711\n" {
		t.Errorf("bad output '%s'", s)
	}
}

func TestCmd_String(t *testing.T) {
	c := Cmd{Exe: "cc", Args: []string{"-c", "my file.c", "-o", "build/my file.o"}}
	if s := c.String(); s != "cc -c 'my file.c' -o 'build/my file.o'" {
		t.Errorf("command string %s", s)
	}
}
