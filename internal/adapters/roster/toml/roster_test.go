package toml

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yardops/idlereport/internal/domain"
)

func writeRoster(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "roster.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const sampleRoster = `
version = 1

[[managers]]
id = "m-1"
name = "Day shift"
associates = ["a-1", "a-2"]

[[managers]]
id = "m-2"
associates = [" a-3 "]
`

func TestDirectoryLookup(t *testing.T) {
	dir, err := NewDirectoryFromFile(writeRoster(t, sampleRoster))
	require.NoError(t, err)
	assert.Equal(t, 3, dir.Size())

	manager, err := dir.ManagerOf(context.Background(), "a-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ManagerID("m-1"), manager)

	manager, err = dir.ManagerOf(context.Background(), "a-3")
	require.NoError(t, err)
	assert.Equal(t, domain.ManagerID("m-2"), manager)
}

func TestDirectoryUnknownAssociate(t *testing.T) {
	dir, err := NewDirectoryFromFile(writeRoster(t, sampleRoster))
	require.NoError(t, err)

	_, err = dir.ManagerOf(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrUnknownManager)
}

func TestDirectoryRejectsDuplicateAssignment(t *testing.T) {
	_, err := NewDirectoryFromFile(writeRoster(t, `
[[managers]]
id = "m-1"
associates = ["a-1"]

[[managers]]
id = "m-2"
associates = ["a-1"]
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a-1")
}

func TestDirectoryRejectsUnsupportedVersion(t *testing.T) {
	_, err := NewDirectoryFromFile(writeRoster(t, "version = 9\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version")
}

func TestDirectoryMissingFile(t *testing.T) {
	_, err := NewDirectoryFromFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestDirectoryEmptyPath(t *testing.T) {
	_, err := NewDirectoryFromFile("")
	require.Error(t, err)
}
