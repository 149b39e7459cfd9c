// Package verify implements the `homeshift verify` command: a standalone
// re-verification of a previously completed migration. Every category
// present at the source is re-checked, whether or not the last run copied
// it, so a finished migration can be audited at any later time.
package verify

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/homeshift/homeshift/cmd/util"
	"github.com/homeshift/homeshift/pkg/migrate"
)

// New returns the verify command.
func New() *cobra.Command {
	var opts migrate.Options
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Re-verify a completed migration without copying anything",
		Long: "Run the checksum comparison pass between the source and destination " +
			"accounts' data directories. Nothing is written to the destination; any " +
			"divergence produces a per-category diff report and a non-zero exit.",
		Run: func(_ *cobra.Command, _ []string) {
			opts.ApplyDefaults()
			if err := migrate.RunVerify(context.Background(), opts); err != nil {
				util.HandleFatalError(err)
			}
		},
	}

	cmd.Flags().StringVar(&opts.SourceAccount, "from", "", "source account name")
	cmd.Flags().StringVar(&opts.DestAccount, "to", "", "destination account name")
	cmd.Flags().StringVar(&opts.ExcludeFile, "exclude-file", "",
		"the same pattern file the migration ran with")
	cmd.Flags().StringVar(&opts.LogDir, "log-dir", "",
		"directory for the run log and diff reports (default "+migrate.DefaultLogDir+")")
	cmd.Flags().StringVar(&opts.RsyncPath, "rsync", "", "path to the rsync binary (default: $PATH lookup)")
	return cmd
}
