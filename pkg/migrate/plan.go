package migrate

import (
	log "github.com/sirupsen/logrus"

	"github.com/homeshift/homeshift/pkg/errors"
)

// SyncTask is the per-category unit of work handed to the copy executor.
type SyncTask struct {
	Category Category
	Source   string // source category directory
	Dest     string // destination category directory
	Excludes []string
	DryRun   bool
}

// BuildPlan produces one SyncTask per catalog category that exists as a
// directory under srcHome, in catalog order. Categories absent at the
// source are skipped and logged, never an error.
//
// On a real run the destination category directory is created if absent
// (idempotent). Dry runs create nothing, so a dry run never mutates any
// byte of the destination filesystem.
func BuildPlan(srcHome, dstHome string, excludes []string, dryRun bool, logger *log.Logger) ([]SyncTask, error) {
	var tasks []SyncTask
	for _, category := range Catalog {
		present, err := category.PresentAt(srcHome)
		if err != nil {
			return nil, errors.WithContext(err, "probe source")
		}
		if !present {
			logger.WithField("category", category).Info("skipping: not present at source")
			continue
		}

		dest := category.Path(dstHome)
		if !dryRun {
			if err := fs.MkdirAll(dest, 0o755); err != nil {
				return nil, errors.WithContext(err, "create destination directory "+dest)
			}
		}

		tasks = append(tasks, SyncTask{
			Category: category,
			Source:   category.Path(srcHome),
			Dest:     dest,
			Excludes: excludes,
			DryRun:   dryRun,
		})
	}
	return tasks, nil
}
