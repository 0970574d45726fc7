package syncer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/huh"
	log "github.com/charmbracelet/log"
	"github.com/fatih/color"
	git "github.com/go-git/go-git/v5"
	"github.com/pkg/errors"

	"contentsync/internal/diffview"
	"contentsync/internal/gitops"
	"contentsync/internal/ignore"
	"contentsync/internal/walker"
)

// Confirmer answers yes/no questions during the staging workflow.
type Confirmer interface {
	Confirm(message string, def bool) (bool, error)
}

// HuhConfirmer prompts on the terminal.
type HuhConfirmer struct{}

func (HuhConfirmer) Confirm(message string, def bool) (bool, error) {
	ok := def
	prompt := huh.NewConfirm().
		Title(message).
		Affirmative("Yes").
		Negative("No").
		Value(&ok)
	if err := prompt.Run(); err != nil {
		return false, err
	}
	return ok, nil
}

// Syncer stages new and modified files from a content tree into a custom
// content repository and optionally cuts a release.
type Syncer struct {
	ContentDir string
	CustomDir  string
	Custom     *git.Repository
	// IgnoreFile is the basename of the ignore file consulted at the
	// parent of each tree; empty means ignore.DefaultBasename.
	IgnoreFile string
	Confirm    Confirmer
	// Force answers yes to every prompt.
	Force bool
	Out   io.Writer
	// Now is overridable for tests; nil means time.Now.
	Now func() time.Time
}

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
)

func (s *Syncer) confirm(message string, def bool) (bool, error) {
	if s.Force {
		return true, nil
	}
	return s.Confirm.Confirm(message, def)
}

func (s *Syncer) out() io.Writer {
	if s.Out == nil {
		return os.Stdout
	}
	return s.Out
}

func (s *Syncer) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Run walks both trees, asks about every new or modified content file, copies
// the accepted ones into the custom tree, stages them, and offers to create a
// release. It returns the staged paths.
func (s *Syncer) Run() ([]string, error) {
	basename := s.IgnoreFile
	if basename == "" {
		basename = ignore.DefaultBasename
	}

	contentSet := ignore.Load(s.ContentDir, basename, true)
	customSet := ignore.Load(s.CustomDir, basename, true)
	for _, d := range append(contentSet.Diagnostics(), customSet.Diagnostics()...) {
		log.Debug("ignore", "diagnostic", d)
	}

	fmt.Fprint(s.out(), "Filtering ignored files... ")
	contentFiles, err := walker.ListFiles(s.ContentDir, contentSet)
	if err != nil {
		return nil, errors.Wrap(err, "listing content files")
	}
	customFiles, err := walker.ListFiles(s.CustomDir, customSet)
	if err != nil {
		return nil, errors.Wrap(err, "listing custom files")
	}
	green.Fprintln(s.out(), "Done!")

	existing := make(map[string]bool, len(customFiles))
	for _, f := range customFiles {
		existing[f] = true
	}

	var staged []string
	addAll, modifyAll := false, false
	for _, rel := range contentFiles {
		if !existing[rel] {
			fmt.Fprintf(s.out(), "%s ", rel)
			green.Fprintln(s.out(), "New!")
			if addAll {
				staged = append(staged, rel)
				continue
			}
			ok, err := s.confirm("Do you want to add this file?", true)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			staged = append(staged, rel)
			all, err := s.confirm("Do you want to add all new files?", false)
			if err != nil {
				return nil, err
			}
			addAll = addAll || all
			continue
		}

		lines, err := diffview.Unified(
			filepath.Join(s.CustomDir, filepath.FromSlash(rel)),
			filepath.Join(s.ContentDir, filepath.FromSlash(rel)),
		)
		if err != nil {
			return nil, errors.Wrapf(err, "diffing %s", rel)
		}
		if len(lines) == 0 {
			continue
		}

		fmt.Fprintf(s.out(), "%s ", rel)
		yellow.Fprintln(s.out(), "Modified!")
		if modifyAll {
			staged = append(staged, rel)
			continue
		}
		view, err := s.confirm("Do you want to view diff?", false)
		if err != nil {
			return nil, err
		}
		if view {
			diffview.Fprint(s.out(), lines)
		}
		ok, err := s.confirm("Do you want to accept these changes?", true)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		staged = append(staged, rel)
		all, err := s.confirm("Do you want to add all modified files?", false)
		if err != nil {
			return nil, err
		}
		modifyAll = modifyAll || all
	}

	if err := s.stage(staged); err != nil {
		return nil, err
	}

	if len(staged) == 0 {
		fmt.Fprintln(s.out(), "No new files added to stage.")
		green.Fprintln(s.out(), "Content sync complete.")
		return nil, nil
	}

	fmt.Fprintf(s.out(), "%d files have been staged.\n", len(staged))
	release, err := s.confirm("Do you want to create a new release with these changes?", true)
	if err != nil {
		return nil, err
	}
	if release {
		version, err := gitops.Release(s.Custom, s.now())
		if err != nil {
			return nil, err
		}
		fmt.Fprint(s.out(), "A new release has been created. Tag: ")
		green.Fprintln(s.out(), version)
	}
	green.Fprintln(s.out(), "Content sync complete.")
	return staged, nil
}

// stage copies each accepted file into the custom tree and adds it to the
// index. Copy failures abort the run.
func (s *Syncer) stage(paths []string) error {
	for _, rel := range paths {
		src := filepath.Join(s.ContentDir, filepath.FromSlash(rel))
		dst := filepath.Join(s.CustomDir, filepath.FromSlash(rel))
		if err := copyFile(src, dst); err != nil {
			return errors.Wrapf(err, "copying %s", rel)
		}
	}
	return gitops.Stage(s.Custom, paths)
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
