package shmk

import (
	"os"

	"git.fractalqb.de/fractalqb/shmk/shmkore"
)

// WDir is a change of the process' working directory that must be undone
// with [WDir.Back], usually deferred right after a successful [Cd]. The
// working directory is process wide, so projects must not be built
// concurrently.
type WDir struct {
	tr   *shmkore.Trace
	pre  string
	back bool
}

// Cd changes the working directory to dir and remembers the current one.
func Cd(tr *shmkore.Trace, dir string) (*WDir, error) {
	pre, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	if err := os.Chdir(dir); err != nil {
		return nil, err
	}
	tr.Debug("enter `directory`", `directory`, dir)
	return &WDir{tr: tr, pre: pre}, nil
}

// Back restores the working directory that was current before [Cd]. Calling
// Back more than once is a no-op.
func (d *WDir) Back() error {
	if d == nil || d.back {
		return nil
	}
	d.back = true
	if err := os.Chdir(d.pre); err != nil {
		d.tr.Error("cannot restore `directory`: `error`", `directory`, d.pre, `error`, err)
		return err
	}
	d.tr.Debug("back to `directory`", `directory`, d.pre)
	return nil
}
