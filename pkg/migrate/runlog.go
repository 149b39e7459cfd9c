package migrate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/homeshift/homeshift/pkg/errors"
)

// RunLog owns the single append-only log file for one run. Every phase
// writes its transcript here, interleaved with status lines, in the order
// operations actually occur. The file is never rotated or truncated during
// the run, and never deleted by homeshift; cleanup is an external concern.
type RunLog struct {
	path   string
	stamp  string
	file   afero.File
	logger *log.Logger
}

// NewRunLog creates the per-run log file in dir, named with the source and
// destination account identifiers and the clock's current time at second
// resolution. It must be created before any other component acts.
func NewRunLog(dir, src, dst string, clock clockwork.Clock) (*RunLog, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.WithContext(err, "create log directory")
	}

	stamp := clock.Now().Format("20060102-150405")
	path := filepath.Join(dir, fmt.Sprintf("%s-to-%s-%s.log", src, dst, stamp))
	file, err := fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.WithContext(err, "open run log")
	}

	logger := log.New()
	logger.SetOutput(file)
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true, DisableColors: true})

	return &RunLog{path: path, stamp: stamp, file: file, logger: logger}, nil
}

// Logger returns the structured logger writing to the run log file.
func (rl *RunLog) Logger() *log.Logger {
	return rl.logger
}

// Writer returns the raw sink for the underlying tool's stdout/stderr.
// Output written here lands in the same file as the status lines, in order.
func (rl *RunLog) Writer() io.Writer {
	return rl.file
}

// Path returns the run log file's location.
func (rl *RunLog) Path() string {
	return rl.path
}

// Stamp returns the run's start timestamp in the form used by artifact
// file names.
func (rl *RunLog) Stamp() string {
	return rl.stamp
}

// Close flushes and closes the log file.
func (rl *RunLog) Close() error {
	return rl.file.Close()
}
