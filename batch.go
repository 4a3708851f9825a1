package shmk

import (
	"errors"
	"fmt"
	"sync"

	"git.fractalqb.de/fractalqb/shmk/shmkore"
	"github.com/bits-and-blooms/bitset"
	"mvdan.cc/sh/v3/shell"
)

var errEmptyCommand = errors.New("empty command")

// Batch holds the outcomes of a [RunAll] in the order of the commands.
type Batch struct {
	Outcomes []Outcome
	failed   *bitset.BitSet
}

// Failed returns the indices of the failed commands in ascending order.
func (b *Batch) Failed() (idxs []int) {
	for i, ok := b.failed.NextSet(0); ok; i, ok = b.failed.NextSet(i + 1) {
		idxs = append(idxs, int(i))
	}
	return idxs
}

func (b *Batch) NumFailed() int { return int(b.failed.Count()) }

// Err joins a [shmkore.CommandFailure] with step batch for each failed
// command. It is nil if all commands succeeded.
func (b *Batch) Err() error {
	var errs []error
	for _, i := range b.Failed() {
		errs = append(errs, b.Outcomes[i].Failure(shmkore.StepBatch))
	}
	return errors.Join(errs...)
}

// RunAll runs all cmds concurrently, one process per command, and returns
// after every command has finished. A failing command does not affect the
// others. Failures are traced after the whole batch completed. Each command
// string is split into arguments by shell word rules where variables expand
// from env. Lines written by command i are prefixed with "[i] ".
func RunAll(tr *shmkore.Trace, env *shmkore.Env, cmds ...string) *Batch {
	b := &Batch{
		Outcomes: make([]Outcome, len(cmds)),
		failed:   bitset.New(uint(len(cmds))),
	}
	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		sout = lockedWriter{mu: &mu, w: orDiscard(env.Out)}
		serr = lockedWriter{mu: &mu, w: orDiscard(env.Err)}
	)
	tr.Debug("start batch of `count` commands", `count`, len(cmds))
	for i, c := range cmds {
		argv, err := shell.Fields(c, env.Getenv)
		if err == nil && len(argv) == 0 {
			err = errEmptyCommand
		}
		if err != nil {
			b.Outcomes[i] = Outcome{Cmd: c, Status: -1, Err: err}
			continue
		}
		cenv := env.Sub()
		prefix := fmt.Sprintf("[%d] ", i)
		cenv.Out = newPrefixWriterString(sout, prefix)
		cenv.Err = newPrefixWriterString(serr, prefix)
		ctr := tr.Command(c)
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Outcomes[i] = run(ctr, cenv, Cmd{Exe: argv[0], Args: argv[1:]})
		}()
	}
	wg.Wait()
	for i, out := range b.Outcomes {
		if out.Failed() {
			b.failed.Set(uint(i))
			traceFailure(tr, out, "")
		}
	}
	if n := b.failed.Count(); n > 0 {
		tr.Warn("`failed` of `count` batch commands failed",
			`failed`, n,
			`count`, len(cmds),
		)
	} else {
		tr.Debug("batch of `count` commands succeeded", `count`, len(cmds))
	}
	return b
}
