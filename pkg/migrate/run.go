package migrate

import (
	"context"

	"github.com/jonboulle/clockwork"

	"github.com/homeshift/homeshift/pkg/errors"
)

// Options holds the parameters for one migration run. They come from the
// CLI layer (flags plus an optional preset file); the engine itself never
// prompts.
type Options struct {
	SourceAccount string
	DestAccount   string
	DryRun        bool
	Verify        bool

	// ExcludeFile is the user-editable pattern file. Empty means the run
	// has no exclusion rules; a non-empty path that doesn't exist is a
	// precondition failure.
	ExcludeFile string

	// LogDir receives the run log and any diff reports.
	LogDir string

	// RsyncPath overrides the rsync binary to use; empty means $PATH lookup.
	RsyncPath string

	// HomeRoot overrides the parent directory of account homes. Normally
	// derived from the invoking user's home.
	HomeRoot string

	// Clock and Syncer are injectable for tests; nil selects the real
	// clock and the rsync-backed syncer.
	Clock  clockwork.Clock
	Syncer Syncer
}

// DefaultLogDir receives run logs and diff reports unless overridden.
const DefaultLogDir = "/var/log/homeshift"

// ApplyDefaults fills unset optional fields.
func (opts *Options) ApplyDefaults() {
	if opts.LogDir == "" {
		opts.LogDir = DefaultLogDir
	}
}

func (opts Options) clock() clockwork.Clock {
	if opts.Clock != nil {
		return opts.Clock
	}
	return clockwork.NewRealClock()
}

func (opts Options) syncer() (Syncer, error) {
	if opts.Syncer != nil {
		return opts.Syncer, nil
	}
	return NewRsyncSyncer(opts.RsyncPath)
}

func (opts Options) loadExclusions() ([]string, error) {
	if opts.ExcludeFile == "" {
		return nil, nil
	}
	return LoadExclusions(opts.ExcludeFile)
}

// Run executes one full migration: preconditions, plan, sequential copy,
// ownership normalization, and (when enabled) verification. Phases run
// strictly one after another; a copy failure aborts immediately while
// ownership and verification complete their whole phase before reporting.
func Run(ctx context.Context, opts Options) error {
	srcHome, dstHome, err := CheckPreconditions(opts)
	if err != nil {
		return err
	}
	excludes, err := opts.loadExclusions()
	if err != nil {
		return err
	}
	// Resolve the copy tool before creating any artifact so a missing
	// rsync aborts with nothing on disk.
	syncer, err := opts.syncer()
	if err != nil {
		return err
	}

	rl, err := NewRunLog(opts.LogDir, opts.SourceAccount, opts.DestAccount, opts.clock())
	if err != nil {
		return err
	}
	defer rl.Close()

	logger := rl.Logger()
	logger.WithFields(map[string]interface{}{
		"source":      opts.SourceAccount,
		"destination": opts.DestAccount,
		"dry_run":     opts.DryRun,
		"verify":      opts.Verify,
	}).Info("starting migration run")

	tasks, err := BuildPlan(srcHome, dstHome, excludes, opts.DryRun, logger)
	if err != nil {
		logger.WithError(err).Error("planning failed")
		return errors.WithContext(err, "build plan")
	}

	outcomes, err := ExecuteCopy(ctx, tasks, syncer, rl)
	if err != nil {
		return errors.WithContext(err, "copy phase")
	}

	if !opts.DryRun {
		if err := NormalizeOwnership(ctx, outcomes, opts.DestAccount, rl); err != nil {
			logger.WithError(err).Error("ownership normalization failed")
			return err
		}
	}

	if opts.Verify && !opts.DryRun {
		if _, err := VerifyAll(ctx, srcHome, dstHome, excludes, syncer, rl, opts.LogDir); err != nil {
			logger.WithError(err).Error("verification failed")
			return err
		}
	}

	logger.Info("migration run complete")
	return nil
}

// RunVerify performs a standalone verification pass against a previously
// completed migration, without copying anything. Every category present at
// the source is re-checked with the same exclusion rules.
func RunVerify(ctx context.Context, opts Options) error {
	srcHome, dstHome, err := CheckPreconditions(opts)
	if err != nil {
		return err
	}
	excludes, err := opts.loadExclusions()
	if err != nil {
		return err
	}
	syncer, err := opts.syncer()
	if err != nil {
		return err
	}

	rl, err := NewRunLog(opts.LogDir, opts.SourceAccount, opts.DestAccount, opts.clock())
	if err != nil {
		return err
	}
	defer rl.Close()

	rl.Logger().WithFields(map[string]interface{}{
		"source":      opts.SourceAccount,
		"destination": opts.DestAccount,
	}).Info("starting standalone verification")

	if _, err := VerifyAll(ctx, srcHome, dstHome, excludes, syncer, rl, opts.LogDir); err != nil {
		rl.Logger().WithError(err).Error("verification failed")
		return err
	}

	rl.Logger().Info("verification clean")
	return nil
}
