package migrate

import (
	"fmt"
	"strings"
)

// PreconditionError means the run parameters were unusable: bad or identical
// accounts, a missing source home, or a missing exclusion file. Nothing has
// been touched when it is returned.
type PreconditionError struct {
	Reason string
}

func (err *PreconditionError) Error() string {
	return "precondition failed: " + err.Reason
}

// DependencyError means the underlying copy executable is unavailable or
// unusable. It is returned before the copy phase starts.
type DependencyError struct {
	Tool string
	Err  error
}

func (err *DependencyError) Error() string {
	return fmt.Sprintf("required tool %q is not usable: %v", err.Tool, err.Err)
}

func (err *DependencyError) Unwrap() error {
	return err.Err
}

// CopyError means the underlying copy for one category exited non-zero.
// Categories after it in catalog order were not attempted; categories
// already copied remain on disk and are safe to resume on a re-run.
type CopyError struct {
	Category Category
	Err      error
}

func (err *CopyError) Error() string {
	return fmt.Sprintf("copy of %s failed: %v", err.Category, err.Err)
}

func (err *CopyError) Unwrap() error {
	return err.Err
}

// OwnershipError means the recursive ownership change failed for one or more
// copied destinations. The copied data stays on disk under the wrong owner;
// nothing is rolled back.
type OwnershipError struct {
	Account string
	Paths   []string
	Err     error
}

func (err *OwnershipError) Error() string {
	return fmt.Sprintf("failed to assign ownership to %q for %s: %v (data is on disk, fix ownership manually and re-run verification)",
		err.Account, strings.Join(err.Paths, ", "), err.Err)
}

func (err *OwnershipError) Unwrap() error {
	return err.Err
}

// VerifyFailedError means at least one category showed itemized differences
// after a full verification pass. Every category was still checked and its
// diff report written before this error was produced.
type VerifyFailedError struct {
	Differing []Category
}

func (err *VerifyFailedError) Error() string {
	names := make([]string, len(err.Differing))
	for i, c := range err.Differing {
		names[i] = string(c)
	}
	return "verification found differences in: " + strings.Join(names, ", ")
}
