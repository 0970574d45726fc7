package diffview

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Kind classifies one diff line.
type Kind int

const (
	Context Kind = iota
	Added
	Removed
)

// Line is one line of a rendered diff.
type Line struct {
	Kind Kind
	Text string
}

func isBinary(data []byte) bool {
	return bytes.Contains(data, []byte{0})
}

// Unified compares two files line by line, oldPath to newPath. Identical
// files yield no lines.
func Unified(oldPath, newPath string) ([]Line, error) {
	oldData, err := os.ReadFile(oldPath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", oldPath)
	}
	newData, err := os.ReadFile(newPath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", newPath)
	}
	if bytes.Equal(oldData, newData) {
		return nil, nil
	}
	if isBinary(oldData) || isBinary(newData) {
		return []Line{{Kind: Context, Text: "(binary files differ)"}}, nil
	}

	dmp := diffmatchpatch.New()
	a, b, arr := dmp.DiffLinesToChars(string(oldData), string(newData))
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, arr)

	var lines []Line
	for _, d := range diffs {
		kind := Context
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			kind = Added
		case diffmatchpatch.DiffDelete:
			kind = Removed
		}
		for _, text := range splitLines(d.Text) {
			lines = append(lines, Line{Kind: kind, Text: text})
		}
	}
	return lines, nil
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

var (
	added   = color.New(color.FgGreen)
	removed = color.New(color.FgRed)
)

// Fprint renders diff lines with unified-style +/- prefixes, additions in
// green and removals in red.
func Fprint(w io.Writer, lines []Line) {
	for _, l := range lines {
		switch l.Kind {
		case Added:
			added.Fprintf(w, "+%s\n", l.Text)
		case Removed:
			removed.Fprintf(w, "-%s\n", l.Text)
		default:
			fmt.Fprintf(w, " %s\n", l.Text)
		}
	}
}
