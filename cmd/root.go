// Package cmd wires up the homeshift CLI.
package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	migrateCmd "github.com/homeshift/homeshift/cmd/migrate"
	"github.com/homeshift/homeshift/cmd/util"
	verifyCmd "github.com/homeshift/homeshift/cmd/verify"
	versionCmd "github.com/homeshift/homeshift/cmd/version"
)

// verboseLogKey is the environment variable used to enable verbose logging.
// When it's set to `true`, Debug events are logged, rather than just Info
// and above.
const verboseLogKey = "HOMESHIFT_LOG_VERBOSE"

// Execute runs the main CLI process.
func Execute() {
	if os.Getenv(verboseLogKey) == "true" {
		log.SetLevel(log.DebugLevel)
	}

	rootCmd := &cobra.Command{
		Use:          "homeshift",
		Short:        "Migrate one local account's data directories to another account",
		SilenceUsage: true,

		// The commands print their own errors through HandleFatalError, so
		// we silence errors here to avoid double printing.
		SilenceErrors: true,
	}
	rootCmd.AddCommand(
		migrateCmd.New(),
		verifyCmd.New(),
		versionCmd.New(),
	)

	if err := rootCmd.Execute(); err != nil {
		util.HandleFatalError(err)
	}
}
