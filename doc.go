// Package shmk builds projects that are described by small shell scripts
// instead of a build language of their own. A project directory contains the
// configuration script "build" and one script "<target>.target" per build
// target:
//
//	hello/
//	├── build
//	├── release.target
//	├── debug.target
//	└── main.c
//
// The configuration script declares the project:
//
//	project_kind="C-Simple"
//	targets="release,debug"
//	default_target="release"
//
//	release_pre() {
//	    echo "building release"
//	}
//
// A target script binds the variables of the project type's strategy:
//
//	project_type="C-Simple"
//	src_files=("*.c")
//	cflags="-O2 -Wall"
//
// The scripts are interpreted, not executed, so shmk does not depend on an
// installed shell. Variables the scripts set end up in a [shmkore.Scope].
// Functions named "<target>_pre" are hooks that are called in the project
// directory right before the target is built.
//
// Use [LoadProject] to read and validate a project and a [Builder] to build
// it. Commands are run with [Run], independent commands concurrently with
// [RunAll].
package shmk
