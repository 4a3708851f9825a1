package mkfs

import (
	"io/fs"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"git.fractalqb.de/fractalqb/shmk/shmkore"
	"github.com/bmatcuk/doublestar/v4"
)

// Expand expands source file patterns relative to the working directory into
// the list of existing regular files. Matches are accumulated in pattern order
// and duplicates are dropped. A pattern that matches nothing is reported as a
// warning and skipped.
func Expand(tr *shmkore.Trace, patterns ...string) []string {
	var (
		res  []string
		seen = make(map[string]bool)
	)
	for _, pat := range patterns {
		ls, err := ExpandPattern(pat)
		if err != nil {
			tr.Warn("cannot expand `pattern`: `error`", `pattern`, pat, `error`, err)
			continue
		}
		if len(ls) == 0 {
			tr.Warn("no files match `pattern`", `pattern`, pat)
			continue
		}
		tr.Debug("expanded `pattern` to `files`", `pattern`, pat, `files`, ls)
		for _, f := range ls {
			key := filepath.Clean(f)
			if seen[key] {
				continue
			}
			seen[key] = true
			res = append(res, f)
		}
	}
	return res
}

// ExpandPattern expands a single pattern. A pattern with a "**" segment
// searches the working directory recursively for files matching the
// pattern's base name. All other patterns are shell-style globs, where a
// literal path yields itself if it is an existing file. The result is sorted
// lexically within each directory and empty if nothing matches.
func ExpandPattern(pattern string) ([]string, error) {
	if pattern == "" {
		return nil, nil
	}
	if IsRecursive(pattern) {
		return findRecursive(".", path.Base(filepath.ToSlash(pattern)))
	}
	ls, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}
	return ls, nil
}

// IsRecursive reports whether pattern has a "**" path segment.
func IsRecursive(pattern string) bool {
	return slices.Contains(strings.Split(filepath.ToSlash(pattern), "/"), "**")
}

func findRecursive(root, name string) (ls []string, err error) {
	if _, err := filepath.Match(name, ""); err != nil {
		return nil, err
	}
	filter := All{IsDir(false), NameMatch(name), Regular}
	err = filepath.WalkDir(root, func(p string, e fs.DirEntry, err error) error {
		if err != nil {
			if e != nil && e.IsDir() && p != root {
				return fs.SkipDir
			}
			return nil
		}
		if ok, _ := filter.Ok(p, e); ok {
			ls = append(ls, p)
		}
		return nil
	})
	return ls, err
}
