package shmkore

import (
	"testing"
)

func TestParseTraceLog(t *testing.T) {
	for flag, want := range map[string]TraceLog{
		"":      DefaultTraceLog,
		"off":   0,
		"w":     TraceWarn,
		"info":  TraceWarn | TraceInfo,
		"debug": TraceWarn | TraceInfo | TraceDebug,
		"trace": TraceWarn | TraceInfo | TraceDebug,
	} {
		got, err := ParseTraceLog(flag)
		if err != nil {
			t.Errorf("flag '%s': %s", flag, err)
		} else if got != want {
			t.Errorf("flag '%s': %d, want %d", flag, got, want)
		}
	}
	if _, err := ParseTraceLog("loud"); err == nil {
		t.Error("no error for illegal flag")
	}
}

func TestTrace_Path(t *testing.T) {
	tr, _ := NewTestTrace(t)
	prj := &Project{Dir: "/tmp/hello", Target: "release"}
	ptr := tr.Project(prj)
	ctr := ptr.Command("cc -c main.c")
	if tag := ptr.TopTag(); tag != "{1}" {
		t.Errorf("project tag %s", tag)
	}
	if p := ctr.Path(); p != "<(2){1}>" {
		t.Errorf("path %s", p)
	}
	if s := prj.String(); s != "hello:release" {
		t.Errorf("project string %s", s)
	}
}
