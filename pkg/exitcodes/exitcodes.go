// Package exitcodes defines the process exit codes for homeshift.
// These codes form the operational contract with wrapper scripts and
// operators; scripts branch on them, so they must stay stable.
package exitcodes

const (
	Success      = 0 // copy and optional verification completed clean
	GenericError = 1 // unclassified failure
	Precondition = 2 // bad accounts, missing source home, missing exclusion file
	Dependency   = 3 // rsync unavailable or unusable
	CopyFailed   = 4 // a category copy exited non-zero
	Ownership    = 5 // recursive chown of copied data failed
	VerifyFailed = 6 // verification found divergent categories
)
