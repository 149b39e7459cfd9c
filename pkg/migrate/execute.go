package migrate

import (
	"context"
)

// CopyOutcome records the result of one category's copy.
type CopyOutcome struct {
	Category Category
	Dest     string
	// Executed is false for dry runs: the plan was computed and reported
	// but nothing was written, so the destination must not be chowned.
	Executed bool
	// Transcript is where the copy tool's full output went (the run log).
	Transcript string
}

// ExecuteCopy runs the planned tasks one at a time, in catalog order. The
// copy tool's output streams into the run log as it is produced. A non-zero
// exit from any category is fatal: the outcomes collected so far are
// returned together with a *CopyError and no later category is attempted.
// Already-copied categories stay on disk; re-running the tool is the retry
// mechanism, relying on rsync's resumability.
func ExecuteCopy(ctx context.Context, tasks []SyncTask, syncer Syncer, rl *RunLog) ([]CopyOutcome, error) {
	var outcomes []CopyOutcome
	for _, task := range tasks {
		logger := rl.Logger().WithField("category", task.Category)
		if task.DryRun {
			logger.Info("dry run: computing copy plan")
		} else {
			logger.Info("copying")
		}

		if err := syncer.Copy(ctx, task, rl.Writer()); err != nil {
			copyErr := &CopyError{Category: task.Category, Err: err}
			logger.WithError(err).Error("copy failed, aborting remaining categories")
			return outcomes, copyErr
		}

		outcomes = append(outcomes, CopyOutcome{
			Category:   task.Category,
			Dest:       task.Dest,
			Executed:   !task.DryRun,
			Transcript: rl.Path(),
		})
	}
	return outcomes, nil
}
