package docstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveAndLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	path, err := store.Save("My Repo", "# AGENTS.md — My Repo\n\n## Code Style\n\n* rule")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("my-repo", "AGENTS.md"), filepath.Join(filepath.Base(filepath.Dir(path)), filepath.Base(path)))

	loaded, err := store.LoadExisting("My Repo")
	require.NoError(t, err)
	assert.Contains(t, loaded, "## Code Style")
}

func TestStore_LoadMissingIsEmpty(t *testing.T) {
	store := NewStore(t.TempDir())

	loaded, err := store.LoadExisting("never-generated")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestStore_SaveStripsOuterFenceWrapper(t *testing.T) {
	store := NewStore(t.TempDir())

	t.Run("markdown-tagged wrapper", func(t *testing.T) {
		path, err := store.Save("demo", "```markdown\n# AGENTS.md — demo\n\nbody\n```")
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "# AGENTS.md — demo\n\nbody", string(data))
	})

	t.Run("interior fences survive", func(t *testing.T) {
		content := "# AGENTS.md — demo\n\n```go\nvar x int\n```\n\nClosing note."
		path, err := store.Save("demo2", content)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, content, string(data))
	})
}

func TestNormalizeRepoName(t *testing.T) {
	assert.Equal(t, "my-cool-repo", normalizeRepoName("My Cool Repo"))
	assert.Equal(t, "already-fine", normalizeRepoName("already-fine"))
}
