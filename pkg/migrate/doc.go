// Package migrate contains the core engine for homeshift: planning which
// data directories to copy between two local accounts, applying exclusion
// patterns, executing the mirroring copy (or a dry run), normalizing
// ownership on the destination, and verifying the result with a
// checksum-based comparison pass. It is driven by the CLI layer but can be
// embedded in other tooling that needs programmatic account-data migration.
package migrate
