// Package discover expands command-line arguments into the list of
// Devicetree sources to check.
package discover

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// StdinPath is the argument that selects standard input.
const StdinPath = "-"

var sourceRe = regexp.MustCompile(`\.dts[io]?$`)

// IsSource reports whether name has a .dts, .dtsi or .dtso extension.
func IsSource(name string) bool {
	return sourceRe.MatchString(name)
}

// Options configures discovery.
type Options struct {
	// Exclude holds doublestar glob patterns ("**" crosses directories). A
	// pattern is matched against the slash-separated path relative to the
	// walked directory and against the base name.
	Exclude []string

	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// Files returns the sources named by args. Directories are expanded first,
// in argument order, each into its sorted list of sources with hidden entries
// skipped. Explicit files follow in argument order and are never filtered.
// Arguments that do not exist are reported in the joined error; the files
// found are still returned.
func Files(args []string, opts Options) ([]string, error) {
	var (
		dirs, files []string
		errs        []error
	)
	for _, arg := range args {
		if arg == StdinPath {
			files = append(files, arg)
			continue
		}
		info, err := os.Stat(arg)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if info.IsDir() {
			dirs = append(dirs, arg)
		} else {
			files = append(files, arg)
		}
	}

	var out []string
	for _, dir := range dirs {
		found, err := walk(dir, opts)
		if err != nil {
			errs = append(errs, err)
		}
		out = append(out, found...)
	}
	out = append(out, files...)

	return out, errors.Join(errs...)
}

func walk(root string, opts Options) ([]string, error) {
	logger := opts.logger()
	var found []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		if path != root && excluded(opts.Exclude, rel) {
			logger.Debug("excluded", slog.String("path", path))
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.IsDir() && IsSource(d.Name()) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return found, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	slices.Sort(found)
	logger.Debug("discovered sources", slog.String("root", root), slog.Int("count", len(found)))
	return found, nil
}

func isHidden(name string) bool {
	return len(name) > 1 && name[0] == '.'
}

// excluded matches rel (and its base name) against the patterns. Invalid
// patterns never match; configuration validation reports them.
func excluded(patterns []string, rel string) bool {
	slashed := filepath.ToSlash(rel)
	base := filepath.Base(rel)
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, slashed); ok {
			return true
		}
		if ok, _ := doublestar.Match(p, base); ok {
			return true
		}
	}
	return false
}
