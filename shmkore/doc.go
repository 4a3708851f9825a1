// Package shmkore implements the core model of shmk: the configuration
// [Scope] loaded from a project's build scripts, the [Project] selected for
// one build invocation, the build [Strategy] contract together with the
// [Registry] that dispatches project types to strategies, and the [Trace]
// used to report what happens. The operations that work on this model, i.e.
// loading scripts, running commands and building targets, live in the [shmk]
// package.
//
// [shmk]: https://pkg.go.dev/git.fractalqb.de/fractalqb/shmk
package shmkore
