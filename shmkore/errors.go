package shmkore

import (
	"errors"
	"fmt"
	"strings"
)

// MissingConfig is returned when a required variable is not bound.
type MissingConfig string

var ErrMissingConfig error = MissingConfig("")

func (e MissingConfig) Error() string {
	return fmt.Sprintf("missing configuration value '%s'", string(e))
}

func (MissingConfig) Is(target error) bool {
	_, ok := target.(MissingConfig)
	return ok
}

// InvalidTarget is returned when the selected target is not declared.
type InvalidTarget struct {
	Target  string
	Targets []string
}

var ErrInvalidTarget error = InvalidTarget{}

func (e InvalidTarget) Error() string {
	return fmt.Sprintf("target '%s' not in declared targets [%s]",
		e.Target,
		strings.Join(e.Targets, ", "),
	)
}

func (InvalidTarget) Is(target error) bool {
	_, ok := target.(InvalidTarget)
	return ok
}

// UnknownProjectType is returned when no strategy is registered for a
// project type.
type UnknownProjectType string

var ErrUnknownProjectType error = UnknownProjectType("")

func (e UnknownProjectType) Error() string {
	if e == "" {
		return "project type not set"
	}
	return fmt.Sprintf("unknown project type '%s'", string(e))
}

func (UnknownProjectType) Is(target error) bool {
	_, ok := target.(UnknownProjectType)
	return ok
}

// FileNotFound is returned when a required script is missing or not
// executable.
type FileNotFound struct {
	Path string
	Err  error
}

var ErrFileNotFound error = FileNotFound{}

func (e FileNotFound) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("file not found: %s", e.Path)
	}
	return fmt.Sprintf("file not found: %s: %s", e.Path, e.Err)
}

func (e FileNotFound) Unwrap() error { return e.Err }

func (FileNotFound) Is(target error) bool {
	_, ok := target.(FileNotFound)
	return ok
}

var ErrNotExecutable = errors.New("not executable")

// BadScript is returned when a build script cannot be parsed or exits with a
// non-zero status while being loaded.
type BadScript struct {
	Path string
	Err  error
}

var ErrBadScript error = BadScript{}

func (e BadScript) Error() string {
	return fmt.Sprintf("script %s: %s", e.Path, e.Err)
}

func (e BadScript) Unwrap() error { return e.Err }

func (BadScript) Is(target error) bool {
	_, ok := target.(BadScript)
	return ok
}

var ErrNoSources = errors.New("no source files")

type Step string

const (
	StepCompile Step = "compile"
	StepLink    Step = "link"
	StepHook    Step = "hook"
	StepBatch   Step = "batch"
)

// CommandFailure reports a command that could not be run or exited with a
// non-zero status. Status is -1 if the command did not start.
type CommandFailure struct {
	Step   Step
	Cmd    string
	Status int
	Err    error
}

var (
	ErrCompile error = CommandFailure{Step: StepCompile}
	ErrLink    error = CommandFailure{Step: StepLink}
	ErrHook    error = CommandFailure{Step: StepHook}
	ErrBatch   error = CommandFailure{Step: StepBatch}
)

func (e CommandFailure) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %s", e.Step, e.Cmd, e.Err)
	}
	return fmt.Sprintf("%s failed with exit status %d: %s", e.Step, e.Status, e.Cmd)
}

func (e CommandFailure) Unwrap() error { return e.Err }

// Is matches any CommandFailure target without step and targets with the
// same step.
func (e CommandFailure) Is(target error) bool {
	t, ok := target.(CommandFailure)
	if !ok {
		return false
	}
	return t.Step == "" || t.Step == e.Step
}

// IsConfigError reports whether err is caused by a project's configuration
// rather than by a failing tool.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrMissingConfig) ||
		errors.Is(err, ErrInvalidTarget) ||
		errors.Is(err, ErrUnknownProjectType) ||
		errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrBadScript) ||
		errors.Is(err, ErrNoSources)
}
