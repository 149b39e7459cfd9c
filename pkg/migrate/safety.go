package migrate

import (
	"fmt"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/homeshift/homeshift/pkg/errors"
)

// currentHome is a seam for tests; homedir.Dir in production.
var currentHome = homedir.Dir

// resolveHome maps a local account identifier to its home directory. The
// invoking user's home anchors the homes parent directory (/Users on macOS,
// /home on most Linux systems); other accounts are siblings under the same
// parent. homeRoot overrides the derived parent when non-empty.
func resolveHome(account, homeRoot string) (string, error) {
	if homeRoot != "" {
		return filepath.Join(homeRoot, account), nil
	}
	home, err := currentHome()
	if err != nil {
		return "", errors.WithContext(err, "resolve invoking user's home")
	}
	if filepath.Base(home) == account {
		return home, nil
	}
	return filepath.Join(filepath.Dir(home), account), nil
}

// CheckPreconditions validates the run parameters before any phase starts
// and resolves both account homes. Failures here are *PreconditionErrors:
// no partial state has been created and nothing needs cleaning up.
//
// The destination account must already exist; homeshift never creates
// accounts.
func CheckPreconditions(opts Options) (srcHome, dstHome string, err error) {
	if opts.SourceAccount == "" || opts.DestAccount == "" {
		return "", "", &PreconditionError{Reason: "both source and destination accounts are required"}
	}
	if opts.SourceAccount == opts.DestAccount {
		return "", "", &PreconditionError{
			Reason: fmt.Sprintf("source and destination are both %q; they must differ", opts.SourceAccount),
		}
	}

	if _, err := lookupAccount(opts.DestAccount); err != nil {
		return "", "", &PreconditionError{
			Reason: fmt.Sprintf("destination account %q does not exist: %v", opts.DestAccount, err),
		}
	}

	srcHome, err = resolveHome(opts.SourceAccount, opts.HomeRoot)
	if err != nil {
		return "", "", err
	}
	dstHome, err = resolveHome(opts.DestAccount, opts.HomeRoot)
	if err != nil {
		return "", "", err
	}

	for account, home := range map[string]string{opts.SourceAccount: srcHome, opts.DestAccount: dstHome} {
		info, statErr := fs.Stat(home)
		if statErr != nil || !info.IsDir() {
			return "", "", &PreconditionError{
				Reason: fmt.Sprintf("home directory %s for account %q does not exist", home, account),
			}
		}
	}

	return srcHome, dstHome, nil
}
