package migrate

import (
	"context"
	"io"
	"os/exec"
)

// partialDir is the staging directory rsync uses to keep partially
// transferred files next to their destination, so an interrupted run
// resumes a file instead of restarting it from zero.
const partialDir = ".homeshift-partial"

// Syncer is the capability the engine needs from the underlying copy tool:
// mirroring one directory tree into another, and comparing two trees
// without mutating either. Keeping it an interface lets tests (and CI
// hosts without rsync) substitute a fake implementation.
type Syncer interface {
	// Copy mirrors task.Source into task.Dest, honoring the task's
	// exclusion patterns and dry-run flag. Progress and the transfer
	// summary are streamed to out as they occur.
	Copy(ctx context.Context, task SyncTask, out io.Writer) error

	// Compare runs a checksum-based, non-mutating comparison between
	// task.Source and task.Dest with the same exclusion patterns, writing
	// one itemized line per differing path to out.
	Compare(ctx context.Context, task SyncTask, out io.Writer) error
}

// lookPath is a seam for tests; exec.LookPath in production.
var lookPath = exec.LookPath

// RsyncSyncer drives a real rsync binary. It requires rsync with support
// for archive mode, exclude lists, --partial-dir, dry runs, and itemized
// checksum comparison; provisioning the binary is the caller's problem.
type RsyncSyncer struct {
	// Path is the rsync executable, resolved by NewRsyncSyncer.
	Path string
}

// NewRsyncSyncer resolves the rsync executable and returns a Syncer backed
// by it. An unresolvable binary is a *DependencyError so the caller can
// abort before any data is touched.
func NewRsyncSyncer(path string) (*RsyncSyncer, error) {
	if path == "" {
		path = "rsync"
	}
	resolved, err := lookPath(path)
	if err != nil {
		return nil, &DependencyError{Tool: path, Err: err}
	}
	return &RsyncSyncer{Path: resolved}, nil
}

// copyArgs builds the argument list for a mirroring copy. Exclusions keep
// their file order: rsync applies the first matching rule, which is exactly
// the semantics the exclusion file promises.
func (s *RsyncSyncer) copyArgs(task SyncTask) []string {
	args := []string{
		"--archive", "--acls", "--xattrs", "--hard-links",
		"--partial", "--partial-dir=" + partialDir,
		"--delete",
		"--verbose",
	}
	for _, pattern := range task.Excludes {
		args = append(args, "--exclude="+pattern)
	}
	if task.DryRun {
		args = append(args, "--dry-run", "--itemize-changes")
	}
	// Trailing slashes: copy the contents of Source into Dest, not the
	// directory itself.
	return append(args, task.Source+"/", task.Dest+"/")
}

// compareArgs builds the argument list for the verification pass: a dry run
// forced to compare file contents by checksum, itemizing every difference
// including files that exist only on one side.
func (s *RsyncSyncer) compareArgs(task SyncTask) []string {
	args := []string{
		"--archive", "--acls", "--xattrs", "--hard-links",
		"--dry-run", "--checksum", "--itemize-changes",
		"--delete",
	}
	for _, pattern := range task.Excludes {
		args = append(args, "--exclude="+pattern)
	}
	return append(args, task.Source+"/", task.Dest+"/")
}

func (s *RsyncSyncer) Copy(ctx context.Context, task SyncTask, out io.Writer) error {
	return s.run(ctx, s.copyArgs(task), out)
}

func (s *RsyncSyncer) Compare(ctx context.Context, task SyncTask, out io.Writer) error {
	return s.run(ctx, s.compareArgs(task), out)
}

func (s *RsyncSyncer) run(ctx context.Context, args []string, out io.Writer) error {
	cmd := exec.CommandContext(ctx, s.Path, args...)
	cmd.Stdout = out
	cmd.Stderr = out
	return cmd.Run()
}
