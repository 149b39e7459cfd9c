package migrate

import (
	"bufio"
	"strings"

	"github.com/homeshift/homeshift/pkg/errors"
)

// LoadExclusions reads the exclusion pattern file at path and returns its
// patterns in file order. Blank lines and lines whose first non-whitespace
// character is '#' are discarded. Patterns are opaque glob-style strings;
// no syntax validation happens here, the copy tool's own matcher reports
// unsupported patterns when it runs.
//
// A missing file is a *PreconditionError: the file is user-editable and a
// typo'd path silently copying everything would be worse than failing.
func LoadExclusions(path string) ([]string, error) {
	f, err := fs.Open(path)
	if err != nil {
		if isNotExist(err) {
			return nil, &PreconditionError{Reason: "exclusion file " + path + " does not exist"}
		}
		return nil, errors.WithContext(err, "open exclusion file")
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WithContext(err, "read exclusion file")
	}
	return patterns, nil
}
