// Package source supplies Devicetree source text as numbered lines.
//
// A File does not hold an open handle between uses. Every call to Lines opens
// the file again and closes it once iteration stops, whether the consumer ran
// to the end, broke out early or hit an error.
package source

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"
)

// maxLineSize bounds a single physical line.
const maxLineSize = 1024 * 1024

// Line is one physical line of input.
type Line struct {
	Text   string // line contents without the trailing newline
	Number int    // 1-based line number
}

// File is a restartable line source backed by a path on disk.
type File struct {
	path string
}

// NewFile returns a line source for path. The file is not opened until Lines
// is iterated.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the path the source reads from.
func (f *File) Path() string {
	return f.path
}

func (f *File) String() string {
	return f.path
}

// Lines returns the lines of the file in order. An open or read failure is
// yielded once with a zero Line and ends the sequence.
func (f *File) Lines() iter.Seq2[Line, error] {
	return func(yield func(Line, error) bool) {
		fh, err := os.Open(f.path)
		if err != nil {
			yield(Line{}, fmt.Errorf("failed to open %s: %w", f.path, err))
			return
		}
		defer fh.Close()

		for line, err := range Lines(fh) {
			if err != nil {
				yield(Line{}, fmt.Errorf("failed to read %s: %w", f.path, err))
				return
			}
			if !yield(line, nil) {
				return
			}
		}
	}
}

// Lines splits r into numbered lines. Both "\n" and "\r\n" terminators are
// removed.
func Lines(r io.Reader) iter.Seq2[Line, error] {
	return func(yield func(Line, error) bool) {
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

		n := 0
		for sc.Scan() {
			n++
			if !yield(Line{Text: sc.Text(), Number: n}, nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield(Line{}, err)
		}
	}
}
