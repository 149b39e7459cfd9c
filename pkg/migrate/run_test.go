package migrate

import (
	"context"
	"fmt"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions(syncer Syncer) Options {
	return Options{
		SourceAccount: "alice",
		DestAccount:   "bob",
		Verify:        true,
		LogDir:        "/var/log/homeshift",
		HomeRoot:      "/Users",
		Clock:         testClock(),
		Syncer:        syncer,
	}
}

func setupHomes(t *testing.T, categories ...Category) {
	t.Helper()
	require.NoError(t, fs.MkdirAll("/Users/alice", 0o755))
	require.NoError(t, fs.MkdirAll("/Users/bob", 0o755))
	mkdirs(t, "/Users/alice", categories...)
}

func TestRun_FullMigration(t *testing.T) {
	setupFS(t)
	setupAccounts(t, "alice", "bob")
	setupHomes(t, "Desktop", "Documents")
	cmds := setupShellExec(t, nil)
	syncer := &fakeSyncer{}

	require.NoError(t, Run(context.Background(), testOptions(syncer)))

	// Copy ran for both source-present categories, in catalog order.
	require.Len(t, syncer.copied, 2)
	assert.Equal(t, Category("Desktop"), syncer.copied[0].Category)
	assert.Equal(t, Category("Documents"), syncer.copied[1].Category)

	// Ownership was normalized for both destinations.
	require.Len(t, *cmds, 2)
	assert.Contains(t, (*cmds)[0], "chown -R")

	// Verification re-checked both categories.
	assert.Len(t, syncer.compared, 2)

	// The run log exists and records the phases.
	contents, err := afero.ReadFile(fs, "/var/log/homeshift/alice-to-bob-20240309-143005.log")
	require.NoError(t, err)
	assert.Contains(t, string(contents), "starting migration run")
	assert.Contains(t, string(contents), "migration run complete")
}

func TestRun_DryRunMutatesNothing(t *testing.T) {
	setupFS(t)
	setupAccounts(t, "alice", "bob")
	setupHomes(t, "Desktop", "Pictures")
	cmds := setupShellExec(t, nil)
	syncer := &fakeSyncer{}

	opts := testOptions(syncer)
	opts.DryRun = true
	require.NoError(t, Run(context.Background(), opts))

	// The full plan was still computed and handed to the copy tool.
	require.Len(t, syncer.copied, 2)
	for _, task := range syncer.copied {
		assert.True(t, task.DryRun)
	}

	// No destination directories, no chown, no verification.
	for _, category := range Catalog {
		exists, err := afero.DirExists(fs, category.Path("/Users/bob"))
		require.NoError(t, err)
		assert.False(t, exists, "dry run must not create %s", category)
	}
	assert.Empty(t, *cmds)
	assert.Empty(t, syncer.compared)
}

func TestRun_CopyFailureAborts(t *testing.T) {
	setupFS(t)
	setupAccounts(t, "alice", "bob")
	setupHomes(t, "Desktop", "Documents", "Pictures")
	cmds := setupShellExec(t, nil)
	syncer := &fakeSyncer{
		copyErr: map[Category]error{"Documents": fmt.Errorf("exit status 11")},
	}

	err := Run(context.Background(), testOptions(syncer))
	require.Error(t, err)

	var copyErr *CopyError
	require.ErrorAs(t, err, &copyErr)
	assert.Equal(t, Category("Documents"), copyErr.Category)

	// Pictures was never attempted; neither ownership nor verification ran.
	require.Len(t, syncer.copied, 2)
	assert.Empty(t, *cmds)
	assert.Empty(t, syncer.compared)
}

func TestRun_VerificationDivergenceFailsRun(t *testing.T) {
	setupFS(t)
	setupAccounts(t, "alice", "bob")
	setupHomes(t, "Desktop", "Documents")
	setupShellExec(t, nil)
	syncer := &fakeSyncer{
		compareOutput: map[Category]string{
			"Documents": ">f.st...... taxes/2023.xlsx\n",
		},
	}

	err := Run(context.Background(), testOptions(syncer))
	require.Error(t, err)

	var verifyErr *VerifyFailedError
	require.ErrorAs(t, err, &verifyErr)
	assert.Equal(t, []Category{"Documents"}, verifyErr.Differing)

	// The diff report survives for the operator.
	exists, statErr := afero.Exists(fs, "/var/log/homeshift/verify-Documents-20240309-143005.diff")
	require.NoError(t, statErr)
	assert.True(t, exists)
}

func TestRun_IdempotentCleanVerify(t *testing.T) {
	setupFS(t)
	setupAccounts(t, "alice", "bob")
	setupHomes(t, "Music")
	setupShellExec(t, nil)
	syncer := &fakeSyncer{}

	// Two consecutive runs over an already-synced pair both end clean.
	require.NoError(t, Run(context.Background(), testOptions(syncer)))
	require.NoError(t, Run(context.Background(), testOptions(syncer)))
	assert.Len(t, syncer.copied, 2)
	assert.Len(t, syncer.compared, 2)
}

func TestRun_MissingExclusionFileIsPrecondition(t *testing.T) {
	setupFS(t)
	setupAccounts(t, "alice", "bob")
	setupHomes(t, "Desktop")
	setupShellExec(t, nil)

	opts := testOptions(&fakeSyncer{})
	opts.ExcludeFile = "/etc/homeshift/excludes"

	err := Run(context.Background(), opts)
	require.Error(t, err)

	var precondition *PreconditionError
	require.ErrorAs(t, err, &precondition)

	// Nothing was created, not even the run log.
	exists, statErr := afero.Exists(fs, "/var/log/homeshift")
	require.NoError(t, statErr)
	assert.False(t, exists)
}

func TestRun_ExclusionsReachBothPhases(t *testing.T) {
	setupFS(t)
	setupAccounts(t, "alice", "bob")
	setupHomes(t, "Documents")
	setupShellExec(t, nil)
	require.NoError(t, afero.WriteFile(fs, "/etc/homeshift/excludes", []byte("*.tmp\n"), 0o644))
	syncer := &fakeSyncer{}

	opts := testOptions(syncer)
	opts.ExcludeFile = "/etc/homeshift/excludes"
	require.NoError(t, Run(context.Background(), opts))

	require.Len(t, syncer.copied, 1)
	assert.Equal(t, []string{"*.tmp"}, syncer.copied[0].Excludes)
	require.Len(t, syncer.compared, 1)
	assert.Equal(t, []string{"*.tmp"}, syncer.compared[0].Excludes)
}

func TestRunVerify_Standalone(t *testing.T) {
	setupFS(t)
	setupAccounts(t, "alice", "bob")
	// Pictures exists at the source but was never copied by any plan in
	// this process; the standalone verify still checks it.
	setupHomes(t, "Pictures")
	syncer := &fakeSyncer{}

	require.NoError(t, RunVerify(context.Background(), testOptions(syncer)))

	assert.Empty(t, syncer.copied)
	require.Len(t, syncer.compared, 1)
	assert.Equal(t, Category("Pictures"), syncer.compared[0].Category)
}

func TestRun_OwnershipFailureReported(t *testing.T) {
	setupFS(t)
	setupAccounts(t, "alice", "bob")
	setupHomes(t, "Desktop")
	setupShellExec(t, func(string) error { return fmt.Errorf("chown: Operation not permitted") })
	syncer := &fakeSyncer{}

	err := Run(context.Background(), testOptions(syncer))
	require.Error(t, err)

	var ownership *OwnershipError
	require.ErrorAs(t, err, &ownership)

	// The copy is not rolled back: the destination directory stays.
	exists, statErr := afero.DirExists(fs, "/Users/bob/Desktop")
	require.NoError(t, statErr)
	assert.True(t, exists)
}
