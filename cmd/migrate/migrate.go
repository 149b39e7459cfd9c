// Package migrate implements the `homeshift migrate` command: one full
// migration run, optionally followed by verification.
package migrate

import (
	"context"
	stderrors "errors"

	"github.com/spf13/cobra"

	"github.com/homeshift/homeshift/cmd/util"
	"github.com/homeshift/homeshift/pkg/config"
	"github.com/homeshift/homeshift/pkg/errors"
	"github.com/homeshift/homeshift/pkg/migrate"
)

// defaultPresetPath is searched when --config isn't given; its absence is
// fine, an explicitly passed preset must exist.
const defaultPresetPath = "homeshift.yaml"

type flags struct {
	from        string
	to          string
	dryRun      bool
	verify      bool
	excludeFile string
	logDir      string
	rsync       string
	preset      string
}

// New returns the migrate command.
func New() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Copy the data directories of one local account to another",
		Long: "Copy the fixed set of personal data directories (Desktop, Documents, " +
			"Downloads, Movies, Music, Pictures) from one local account's home to " +
			"another's, fix ownership on the destination, and optionally verify the " +
			"copy with a checksum comparison. The destination account must already exist.",
		Run: func(cmd *cobra.Command, _ []string) {
			opts, err := f.toOptions(cmd.Flags().Changed("verify"))
			if err != nil {
				util.HandleFatalError(err)
			}
			if err := migrate.Run(context.Background(), opts); err != nil {
				util.HandleFatalError(err)
			}
		},
	}

	cmd.Flags().StringVar(&f.from, "from", "", "source account name")
	cmd.Flags().StringVar(&f.to, "to", "", "destination account name (must already exist)")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false,
		"report what would be copied without writing to the destination")
	cmd.Flags().BoolVar(&f.verify, "verify", true,
		"re-check every copied category with a checksum comparison after the copy")
	cmd.Flags().StringVar(&f.excludeFile, "exclude-file", "",
		"pattern file listing paths to omit, one glob per line ('#' comments)")
	cmd.Flags().StringVar(&f.logDir, "log-dir", "",
		"directory for the run log and diff reports (default /var/log/homeshift)")
	cmd.Flags().StringVar(&f.rsync, "rsync", "", "path to the rsync binary (default: $PATH lookup)")
	cmd.Flags().StringVar(&f.preset, "config", "",
		"preset file with the same settings as the flags; flags win on conflict")
	return cmd
}

// toOptions merges the preset file (if any) under the explicit flags.
// verifySet tells us whether --verify was passed explicitly, since its
// default (true) is indistinguishable from a user choice otherwise.
func (f flags) toOptions(verifySet bool) (migrate.Options, error) {
	opts := migrate.Options{
		SourceAccount: f.from,
		DestAccount:   f.to,
		DryRun:        f.dryRun,
		Verify:        f.verify,
		ExcludeFile:   f.excludeFile,
		LogDir:        f.logDir,
		RsyncPath:     f.rsync,
	}

	path := f.preset
	explicit := path != ""
	if !explicit {
		path = defaultPresetPath
	}

	preset, err := config.Parse(path)
	if err != nil {
		var notFound errors.FileNotFound
		if !explicit && stderrors.As(err, &notFound) {
			opts.ApplyDefaults()
			return opts, nil
		}
		return migrate.Options{}, err
	}

	if opts.SourceAccount == "" {
		opts.SourceAccount = preset.From
	}
	if opts.DestAccount == "" {
		opts.DestAccount = preset.To
	}
	if opts.ExcludeFile == "" {
		opts.ExcludeFile = preset.ExcludeFile
	}
	if opts.LogDir == "" {
		opts.LogDir = preset.LogDir
	}
	if opts.RsyncPath == "" {
		opts.RsyncPath = preset.Rsync
	}
	if preset.DryRun {
		opts.DryRun = true
	}
	if preset.Verify != nil && !verifySet {
		opts.Verify = *preset.Verify
	}
	opts.ApplyDefaults()
	return opts, nil
}
