package discover

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/dtsstyle/pkg/source"
)

// ArgFilePrefix marks an argument naming a file of further arguments.
const ArgFilePrefix = "@"

// ExpandArgFiles replaces every "@path" argument with the lines of path, one
// argument per line. Argument files may name other argument files. Blank
// lines are skipped; other lines are used as written.
func ExpandArgFiles(args []string) ([]string, error) {
	return expandArgFiles(args, nil)
}

func expandArgFiles(args []string, open []string) ([]string, error) {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		path, ok := strings.CutPrefix(arg, ArgFilePrefix)
		if !ok || path == "" {
			out = append(out, arg)
			continue
		}
		for _, p := range open {
			if p == path {
				return nil, fmt.Errorf("argument file %s includes itself", path)
			}
		}

		var lines []string
		for line, err := range source.NewFile(path).Lines() {
			if err != nil {
				return nil, fmt.Errorf("argument file: %w", err)
			}
			if strings.TrimSpace(line.Text) == "" {
				continue
			}
			lines = append(lines, line.Text)
		}

		expanded, err := expandArgFiles(lines, append(open, path))
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return out, nil
}
