// Package util contains helpers shared by the CLI commands, mostly around
// turning engine errors into exit codes and user-facing messages.
package util

import (
	stderrors "errors"
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"

	"github.com/homeshift/homeshift/pkg/errors"
	"github.com/homeshift/homeshift/pkg/exitcodes"
	"github.com/homeshift/homeshift/pkg/migrate"
)

// ExitCode maps the engine's error taxonomy to the published exit codes.
func ExitCode(err error) int {
	if err == nil {
		return exitcodes.Success
	}

	var precondition *migrate.PreconditionError
	var dependency *migrate.DependencyError
	var copyErr *migrate.CopyError
	var ownership *migrate.OwnershipError
	var verify *migrate.VerifyFailedError

	switch {
	case stderrors.As(err, &precondition):
		return exitcodes.Precondition
	case stderrors.As(err, &dependency):
		return exitcodes.Dependency
	case stderrors.As(err, &copyErr):
		return exitcodes.CopyFailed
	case stderrors.As(err, &ownership):
		return exitcodes.Ownership
	case stderrors.As(err, &verify):
		return exitcodes.VerifyFailed
	default:
		return exitcodes.GenericError
	}
}

// HandleFatalError prints err for the user and exits with the matching code.
func HandleFatalError(err error) {
	fmt.Fprintln(os.Stderr, errors.GetPrintableMessage(err))
	os.Exit(ExitCode(err))
}

// HandlePanic turns a panic in the CLI into a failure message rather than a
// bare stack trace to stdout. Intended to be deferred from main.
func HandlePanic() {
	if r := recover(); r != nil {
		log.WithField("panic", r).Error("homeshift crashed")
		fmt.Fprintf(os.Stderr, "homeshift crashed: %v\n%s", r, debug.Stack())
		os.Exit(exitcodes.GenericError)
	}
}
