package walker

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"

	"contentsync/internal/ignore"
)

// WalkFunc receives one directory per call, with the names of the files in it
// that survived exclusion.
type WalkFunc func(dir string, files []string) error

// Walk traverses root top-down. Excluded directories are pruned before
// descending so whole subtrees (build output, VCS metadata) are never read;
// excluded files are filtered before fn sees them. I/O failures while reading
// a directory propagate as hard errors.
func Walk(root string, set *ignore.Set, fn WalkFunc) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return errors.Wrapf(err, "resolving %s", root)
	}
	return walk(abs, set, fn)
}

func walk(dir string, set *ignore.Set, fn WalkFunc) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, "reading %s", dir)
	}

	var subdirs, files []string
	for _, e := range entries {
		if e.IsDir() {
			subdirs = append(subdirs, e.Name())
		} else {
			files = append(files, e.Name())
		}
	}
	subdirs = set.PruneChildDirectories(dir, subdirs)

	isDir := false
	kept := files[:0]
	for _, name := range files {
		if set.Match(filepath.Join(dir, name), &isDir) == nil {
			kept = append(kept, name)
		}
	}
	if err := fn(dir, kept); err != nil {
		return err
	}

	for _, name := range subdirs {
		if err := walk(filepath.Join(dir, name), set, fn); err != nil {
			return err
		}
	}
	return nil
}

// ListFiles returns every unexcluded file under root as a sorted,
// slash-separated path relative to root.
func ListFiles(root string, set *ignore.Set) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving %s", root)
	}
	var out []string
	err = Walk(abs, set, func(dir string, files []string) error {
		for _, name := range files {
			rel, err := filepath.Rel(abs, filepath.Join(dir, name))
			if err != nil {
				return err
			}
			out = append(out, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}
