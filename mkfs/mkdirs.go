package mkfs

import (
	"io/fs"
	"os"

	"git.fractalqb.de/fractalqb/shmk/shmkore"
)

// MkDirs creates directories including missing parents. Existing directories
// are not an error.
type MkDirs struct {
	// MkDirMode defaults to 0777 (before umask).
	MkDirMode fs.FileMode
	DryRun    bool
}

func (md MkDirs) Make(tr *shmkore.Trace, dirs ...string) error {
	mode := md.MkDirMode
	if mode == 0 {
		mode = 0777
	}
	for _, dir := range dirs {
		tr.Debug("create `directory`", `directory`, dir)
		if md.DryRun {
			continue
		}
		if err := os.MkdirAll(dir, mode); err != nil {
			return err
		}
	}
	return nil
}

// RemoveDirs removes dirs with all their content. Missing directories are
// skipped, as are files, which are only warned about.
func RemoveDirs(tr *shmkore.Trace, dryrun bool, dirs ...string) error {
	for _, dir := range dirs {
		st, err := os.Lstat(dir)
		switch {
		case os.IsNotExist(err):
			continue
		case err != nil:
			return err
		case !st.IsDir():
			tr.Warn("not removing `file`, it is no directory", `file`, dir)
			continue
		}
		tr.Info("remove `directory`", `directory`, dir)
		if dryrun {
			continue
		}
		if err := os.RemoveAll(dir); err != nil {
			return err
		}
	}
	return nil
}
