package gitops

import (
	"os"
	"time"

	log "github.com/charmbracelet/log"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/pkg/errors"
)

// Update clones url into dir, or opens the clone left behind by a previous
// run.
func Update(url, dir string) (*git.Repository, error) {
	repo, err := git.PlainClone(dir, false, &git.CloneOptions{URL: url})
	if err == nil {
		log.Debug("cloned content repository", "url", url, "dir", dir)
		return repo, nil
	}
	if errors.Is(err, git.ErrRepositoryAlreadyExists) {
		return git.PlainOpen(dir)
	}
	return nil, errors.Wrapf(err, "cloning %s", url)
}

// OpenOrInit opens the repository at dir, initializing a fresh one if none
// exists yet.
func OpenOrInit(dir string) (*git.Repository, error) {
	repo, err := git.PlainOpen(dir)
	if err == nil {
		return repo, nil
	}
	if !errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, errors.Wrapf(err, "opening %s", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating %s", dir)
	}
	return git.PlainInit(dir, false)
}

// Stage adds each path, relative to the worktree root, to the index.
func Stage(repo *git.Repository, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	wt, err := repo.Worktree()
	if err != nil {
		return errors.Wrap(err, "opening worktree")
	}
	for _, p := range paths {
		if _, err := wt.Add(p); err != nil {
			return errors.Wrapf(err, "staging %s", p)
		}
	}
	return nil
}

// Tags returns the short names of every tag in the repository.
func Tags(repo *git.Repository) ([]string, error) {
	iter, err := repo.Tags()
	if err != nil {
		return nil, errors.Wrap(err, "listing tags")
	}
	var tags []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		tags = append(tags, ref.Name().Short())
		return nil
	})
	return tags, err
}

// Release commits whatever is staged and tags the commit with the next
// date-derived version, returning the tag name.
func Release(repo *git.Repository, now time.Time) (string, error) {
	tags, err := Tags(repo)
	if err != nil {
		return "", err
	}
	version := NextVersion(tags, now)

	wt, err := repo.Worktree()
	if err != nil {
		return "", errors.Wrap(err, "opening worktree")
	}
	sig := &object.Signature{Name: "contentsync", Email: "contentsync@localhost", When: now}
	hash, err := wt.Commit("Custom content sync.", &git.CommitOptions{Author: sig})
	if err != nil {
		return "", errors.Wrap(err, "committing")
	}
	if _, err := repo.CreateTag(version, hash, &git.CreateTagOptions{
		Tagger:  sig,
		Message: "Automatic release based on content update.",
	}); err != nil {
		return "", errors.Wrapf(err, "tagging %s", version)
	}
	log.Debug("created release", "tag", version, "commit", hash.String())
	return version, nil
}
