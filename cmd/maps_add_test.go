package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cs2kit/cs2kit/internal/gamemodes"
)

const addTestFixture = `"GameModes_Server.txt"
{
	"mapgroups"
	{
		"mg_active"
		{
			"maps"
			{
				"de_dust2"	""
			}
		}
	}
}
`

func newBufferedCommand() (*cobra.Command, *bytes.Buffer) {
	c := &cobra.Command{}
	var buf bytes.Buffer
	c.SetOut(&buf)
	c.SetErr(&buf)
	return c, &buf
}

func TestAddMapToGroup_WritesFileAndBackup(t *testing.T) {
	dir := t.TempDir()
	gmPath := filepath.Join(dir, "gamemodes_server.txt")
	idsPath := filepath.Join(dir, "subscribed_file_ids.txt")
	require.NoError(t, os.WriteFile(gmPath, []byte(addTestFixture), 0o644))

	c, buf := newBufferedCommand()
	err := addMapToGroup(c, gmPath, idsPath, "mg_active", "de_overpass", "123456", gamemodes.PositionEnd)
	require.NoError(t, err)

	data, err := os.ReadFile(gmPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"workshop/123456/de_overpass"`)

	backup, err := os.ReadFile(gmPath + ".bak")
	require.NoError(t, err)
	assert.Equal(t, addTestFixture, string(backup), "backup preserves the pre-edit file")

	ids, err := os.ReadFile(idsPath)
	require.NoError(t, err)
	assert.Equal(t, "123456\n", string(ids))

	assert.Contains(t, buf.String(), "[ok] added map")
	assert.Contains(t, buf.String(), "[ok] subscribed workshop ID 123456")
}

func TestBackupFile_KeepsSourceMode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "gamemodes_server.txt")
	require.NoError(t, os.WriteFile(src, []byte(addTestFixture), 0o600))

	backup, err := backupFile(src)
	require.NoError(t, err)

	info, err := os.Stat(backup)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestAddMapToGroup_SkipsDuplicate(t *testing.T) {
	dir := t.TempDir()
	gmPath := filepath.Join(dir, "gamemodes_server.txt")
	require.NoError(t, os.WriteFile(gmPath, []byte(addTestFixture), 0o644))

	c, buf := newBufferedCommand()
	err := addMapToGroup(c, gmPath, filepath.Join(dir, "ids.txt"), "mg_active", "de_dust2", "", gamemodes.PositionEnd)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "[skip]")
	_, err = os.Stat(gmPath + ".bak")
	assert.True(t, os.IsNotExist(err), "no backup when nothing changed")
}

func TestAddMapToGroup_DryRun(t *testing.T) {
	dir := t.TempDir()
	gmPath := filepath.Join(dir, "gamemodes_server.txt")
	idsPath := filepath.Join(dir, "subscribed_file_ids.txt")
	require.NoError(t, os.WriteFile(gmPath, []byte(addTestFixture), 0o644))

	addDryRun = true
	t.Cleanup(func() { addDryRun = false })

	c, buf := newBufferedCommand()
	err := addMapToGroup(c, gmPath, idsPath, "mg_active", "de_train", "999", gamemodes.PositionEnd)
	require.NoError(t, err)

	data, err := os.ReadFile(gmPath)
	require.NoError(t, err)
	assert.Equal(t, addTestFixture, string(data), "dry-run must not modify the file")

	_, err = os.Stat(idsPath)
	assert.True(t, os.IsNotExist(err), "dry-run must not create the IDs file")
	assert.Contains(t, buf.String(), "dry-run")
}

func TestAddMapToGroup_MissingGroup(t *testing.T) {
	dir := t.TempDir()
	gmPath := filepath.Join(dir, "gamemodes_server.txt")
	require.NoError(t, os.WriteFile(gmPath, []byte(addTestFixture), 0o644))

	c, _ := newBufferedCommand()
	err := addMapToGroup(c, gmPath, filepath.Join(dir, "ids.txt"), "mg_missing", "de_x", "", gamemodes.PositionEnd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSubscribeID_Dedup(t *testing.T) {
	dir := t.TempDir()
	idsPath := filepath.Join(dir, "subscribed_file_ids.txt")
	require.NoError(t, os.WriteFile(idsPath, []byte("111\n"), 0o644))

	c, buf := newBufferedCommand()
	require.NoError(t, subscribeID(c, idsPath, "111"))
	assert.Contains(t, buf.String(), "[skip]")

	data, err := os.ReadFile(idsPath)
	require.NoError(t, err)
	assert.Equal(t, "111\n", string(data))
}
