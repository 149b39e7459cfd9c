package migrate

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPlan_SkipsAbsentCategories(t *testing.T) {
	setupFS(t)
	mkdirs(t, "/Users/alice", "Desktop", "Documents")

	tasks, err := BuildPlan("/Users/alice", "/Users/bob", nil, false, discardLogger())
	require.NoError(t, err)

	require.Len(t, tasks, 2)
	assert.Equal(t, Category("Desktop"), tasks[0].Category)
	assert.Equal(t, Category("Documents"), tasks[1].Category)

	// Absent categories get no destination directory.
	for _, category := range []Category{"Downloads", "Movies", "Music", "Pictures"} {
		exists, err := afero.DirExists(fs, category.Path("/Users/bob"))
		require.NoError(t, err)
		assert.False(t, exists, "no destination dir expected for %s", category)
	}
}

func TestBuildPlan_CreatesDestinationDirs(t *testing.T) {
	setupFS(t)
	mkdirs(t, "/Users/alice", "Pictures")

	tasks, err := BuildPlan("/Users/alice", "/Users/bob", nil, false, discardLogger())
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	exists, err := afero.DirExists(fs, "/Users/bob/Pictures")
	require.NoError(t, err)
	assert.True(t, exists)

	// Idempotent on an existing directory.
	_, err = BuildPlan("/Users/alice", "/Users/bob", nil, false, discardLogger())
	assert.NoError(t, err)
}

func TestBuildPlan_DryRunCreatesNothing(t *testing.T) {
	setupFS(t)
	mkdirs(t, "/Users/alice", "Desktop", "Music")

	tasks, err := BuildPlan("/Users/alice", "/Users/bob", []string{"*.tmp"}, true, discardLogger())
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	for _, task := range tasks {
		assert.True(t, task.DryRun)
		assert.Equal(t, []string{"*.tmp"}, task.Excludes)
	}

	exists, err := afero.DirExists(fs, "/Users/bob")
	require.NoError(t, err)
	assert.False(t, exists, "dry run must not touch the destination")
}

func TestBuildPlan_TaskPaths(t *testing.T) {
	setupFS(t)
	mkdirs(t, "/Users/alice", "Documents")

	tasks, err := BuildPlan("/Users/alice", "/Users/bob", nil, false, discardLogger())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "/Users/alice/Documents", tasks[0].Source)
	assert.Equal(t, "/Users/bob/Documents", tasks[0].Dest)
}

func TestCategoryPresentAt(t *testing.T) {
	setupFS(t)
	require.NoError(t, fs.MkdirAll("/Users/alice/Desktop", 0o755))
	// A plain file with a category name is not a category directory.
	require.NoError(t, afero.WriteFile(fs, "/Users/alice/Documents", []byte("x"), 0o644))

	present, err := Category("Desktop").PresentAt("/Users/alice")
	require.NoError(t, err)
	assert.True(t, present)

	present, err = Category("Documents").PresentAt("/Users/alice")
	require.NoError(t, err)
	assert.False(t, present)

	present, err = Category("Pictures").PresentAt("/Users/alice")
	require.NoError(t, err)
	assert.False(t, present)
}

func TestCatalogOrder(t *testing.T) {
	exp := []Category{"Desktop", "Documents", "Downloads", "Movies", "Music", "Pictures"}
	assert.Equal(t, exp, Catalog)
}
