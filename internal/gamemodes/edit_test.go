package gamemodes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const editFixture = `"GameModes_Server.txt"
{
	"mapgroups"
	{
		"mg_active"
		{
			"imagename"	"mapgroup-mg_active"
			"maps"
			{
				"de_dust2"	""
				"de_inferno"	""
			}
		}
		"mg_empty"
		{
			"maps"
			{
			}
		}
	}
}
`

func TestAddMap_AppendsAtEnd(t *testing.T) {
	out, added, err := AddMap(editFixture, "mg_active", "de_train", "", PositionEnd)

	require.NoError(t, err)
	assert.True(t, added)

	lines := strings.Split(out, "\n")
	idx := indexOfLine(t, lines, `"de_train"`)
	assert.Greater(t, idx, indexOfLine(t, lines, `"de_inferno"`),
		"end position inserts after existing entries")
	assert.Equal(t, "\t\t\t\t\"de_train\"\t\t\"\"", lines[idx],
		"indent is inferred from existing entries")
}

func TestAddMap_InsertsAtStart(t *testing.T) {
	out, added, err := AddMap(editFixture, "mg_active", "de_train", "", PositionStart)

	require.NoError(t, err)
	assert.True(t, added)

	lines := strings.Split(out, "\n")
	assert.Less(t, indexOfLine(t, lines, `"de_train"`), indexOfLine(t, lines, `"de_dust2"`))
}

func TestAddMap_WorkshopKey(t *testing.T) {
	out, added, err := AddMap(editFixture, "mg_active", "de_overpass", "123456", PositionEnd)

	require.NoError(t, err)
	assert.True(t, added)
	assert.Contains(t, out, `"workshop/123456/de_overpass"`)

	// The inserted key round-trips through extraction.
	res := Extract(out)
	assert.Equal(t, []string{"123456"}, res.SortedIDs())
}

func TestAddMap_SkipsDuplicate(t *testing.T) {
	out, added, err := AddMap(editFixture, "mg_active", "de_dust2", "", PositionEnd)

	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, editFixture, out, "text is unchanged when the key exists")
}

func TestAddMap_EmptyBlockFallbackIndent(t *testing.T) {
	out, added, err := AddMap(editFixture, "mg_empty", "de_nuke", "", PositionEnd)

	require.NoError(t, err)
	assert.True(t, added)
	assert.Contains(t, out, "\t\t\t\t\"de_nuke\"\t\t\"\"")
}

func TestAddMap_Errors(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		group       string
		errContains string
	}{
		{
			name:        "no mapgroups section",
			input:       "\"GameModes_Server.txt\"\n{\n}\n",
			group:       "mg_active",
			errContains: "mapgroups",
		},
		{
			name:        "group not found",
			input:       editFixture,
			group:       "mg_missing",
			errContains: "not found",
		},
		{
			name:        "no maps block",
			input:       "\"mapgroups\"\n{\n\t\"mg_bare\"\n\t{\n\t}\n}\n",
			group:       "mg_bare",
			errContains: `no "maps" block`,
		},
		{
			name:        "unterminated maps block",
			input:       "\"mapgroups\"\n{\n\t\"mg_broken\"\n\t{\n\t\t\"maps\"\n\t\t{\n",
			group:       "mg_broken",
			errContains: "malformed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, added, err := AddMap(tt.input, tt.group, "de_x", "", PositionEnd)
			require.Error(t, err)
			assert.False(t, added)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestFormatMapKey(t *testing.T) {
	assert.Equal(t, "de_dust2", FormatMapKey("de_dust2", ""))
	assert.Equal(t, "workshop/99/aim_map", FormatMapKey("aim_map", "99"))
}

func TestAddSubscribedID(t *testing.T) {
	t.Run("appends to empty body", func(t *testing.T) {
		out, added := AddSubscribedID("", "123")
		assert.True(t, added)
		assert.Equal(t, "123\n", out)
	})

	t.Run("appends to existing body", func(t *testing.T) {
		out, added := AddSubscribedID("111\n222\n", "333")
		assert.True(t, added)
		assert.Equal(t, "111\n222\n333\n", out)
	})

	t.Run("adds missing trailing newline before appending", func(t *testing.T) {
		out, added := AddSubscribedID("111", "222")
		assert.True(t, added)
		assert.Equal(t, "111\n222\n", out)
	})

	t.Run("skips existing id", func(t *testing.T) {
		out, added := AddSubscribedID("111\n222\n", "222")
		assert.False(t, added)
		assert.Equal(t, "111\n222\n", out)
	})

	t.Run("tolerates surrounding whitespace", func(t *testing.T) {
		_, added := AddSubscribedID("  222\t\n", "222")
		assert.False(t, added)
	})
}

// indexOfLine returns the index of the first line containing substr.
func indexOfLine(t *testing.T, lines []string, substr string) int {
	t.Helper()
	for i, ln := range lines {
		if strings.Contains(ln, substr) {
			return i
		}
	}
	t.Fatalf("no line contains %q", substr)
	return -1
}
