package migrate

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"os/user"
)

// shellExec runs a shell command, streaming its combined output to out.
// It is a package variable so tests can intercept commands instead of
// touching the real system.
var shellExec = func(ctx context.Context, cmdStr string, out io.Writer) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", cmdStr)
	cmd.Stdout = out
	cmd.Stderr = out
	return cmd.Run()
}

// lookupAccount is a seam for tests; user.Lookup in production.
var lookupAccount = func(name string) (*user.User, error) {
	return user.Lookup(name)
}

// NormalizeOwnership recursively reassigns ownership of every destination
// root that received a copy in this run to the destination account. It runs
// only after a real (non-dry-run) copy phase and needs enough privilege to
// chown files owned by the source account.
//
// Every collected destination is attempted before reporting, so one early
// failure never hides later ones. A failure here does not undo the copy:
// the data is on disk under the wrong owner and the returned
// *OwnershipError says so.
func NormalizeOwnership(ctx context.Context, outcomes []CopyOutcome, account string, rl *RunLog) error {
	u, err := lookupAccount(account)
	if err != nil {
		return &OwnershipError{Account: account, Err: err}
	}

	var failed []string
	var firstErr error
	for _, outcome := range outcomes {
		if !outcome.Executed {
			continue
		}
		logger := rl.Logger().WithField("category", outcome.Category)
		logger.Infof("assigning ownership of %s to %s", outcome.Dest, account)

		cmdStr := fmt.Sprintf("chown -R %s:%s %q", u.Uid, u.Gid, outcome.Dest)
		if err := shellExec(ctx, cmdStr, rl.Writer()); err != nil {
			logger.WithError(err).Error("ownership change failed")
			failed = append(failed, outcome.Dest)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	if len(failed) > 0 {
		return &OwnershipError{Account: account, Paths: failed, Err: firstErr}
	}
	return nil
}
