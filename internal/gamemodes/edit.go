package gamemodes

import (
	"fmt"
	"strings"
)

// Position selects where a new entry lands within a group's maps block.
type Position string

const (
	PositionStart Position = "start"
	PositionEnd   Position = "end"
)

// fallbackIndent matches the indentation Valve ships in
// gamemodes_server.txt when a maps block has no entries to infer from.
const fallbackIndent = "\t\t\t\t"

// FormatMapKey returns the raw key for a map entry, encoding the workshop
// reference when an ID is given.
func FormatMapKey(mapName, workshopID string) string {
	if workshopID != "" {
		return "workshop/" + workshopID + "/" + mapName
	}
	return mapName
}

// AddMap inserts a map entry into the named group's maps block and returns
// the updated text. The second return is false when the key was already
// present and the text is unchanged. Unlike Extract this is an editing
// operation with a schema expectation, so a missing section, group, or maps
// block is an error.
func AddMap(text, group, mapName, workshopID string, pos Position) (string, bool, error) {
	lines := strings.Split(text, "\n")
	key := FormatMapKey(mapName, workshopID)

	start, end, indent, err := findMapsBlock(lines, group)
	if err != nil {
		return text, false, err
	}

	for _, existing := range blockKeys(lines, start, end) {
		if existing == key {
			return text, false, nil
		}
	}

	entry := indent + `"` + key + `"` + "\t\t" + `""`
	at := end
	if pos == PositionStart {
		at = start
	}
	lines = append(lines[:at], append([]string{entry}, lines[at:]...)...)

	return strings.Join(lines, "\n"), true, nil
}

// AddSubscribedID appends a workshop ID to the subscribed-IDs file body if
// it is not already present. Blank lines and surrounding whitespace in the
// existing body are tolerated.
func AddSubscribedID(text, id string) (string, bool) {
	for _, ln := range strings.Split(text, "\n") {
		if strings.TrimSpace(ln) == id {
			return text, false
		}
	}
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text + id + "\n", true
}

// findMapsBlock locates the maps block of the named group. It returns the
// index of the first line inside the block, the index of the block's closing
// brace line, and the indentation to use for a new entry.
func findMapsBlock(lines []string, group string) (start, end int, indent string, err error) {
	i := 0
	for ; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), `"`+KeywordMapgroups+`"`) {
			break
		}
	}
	if i >= len(lines) {
		return 0, 0, "", fmt.Errorf("no %q section", KeywordMapgroups)
	}

	// Enter the mapgroups block.
	for i++; i < len(lines) && !strings.Contains(lines[i], "{"); i++ {
	}
	if i >= len(lines) {
		return 0, 0, "", fmt.Errorf("malformed %q block: missing {", KeywordMapgroups)
	}
	depth := 1
	i++

	// Find the group header within the block.
	groupStart := -1
	for ; i < len(lines) && depth > 0; i++ {
		depth += strings.Count(lines[i], "{") - strings.Count(lines[i], "}")
		if strings.HasPrefix(strings.TrimSpace(lines[i]), `"`+group+`"`) {
			groupStart = i
			break
		}
	}
	if groupStart == -1 {
		return 0, 0, "", fmt.Errorf("group %q not found in %s", group, KeywordMapgroups)
	}

	// Enter the group block.
	j := groupStart
	for ; j < len(lines) && !strings.Contains(lines[j], "{"); j++ {
	}
	if j >= len(lines) {
		return 0, 0, "", fmt.Errorf("malformed group %q: missing {", group)
	}
	j++
	groupDepth := 1

	for ; j < len(lines) && groupDepth > 0; j++ {
		if strings.HasPrefix(strings.TrimSpace(lines[j]), `"`+KeywordMaps+`"`) {
			return mapsBlockBounds(lines, j, group)
		}
		groupDepth += strings.Count(lines[j], "{") - strings.Count(lines[j], "}")
	}

	return 0, 0, "", fmt.Errorf("no %q block in group %q", KeywordMaps, group)
}

// mapsBlockBounds resolves the open/close lines of a maps block whose
// header sits at lines[header].
func mapsBlockBounds(lines []string, header int, group string) (start, end int, indent string, err error) {
	k := header
	for ; k < len(lines) && !strings.Contains(lines[k], "{"); k++ {
	}
	if k >= len(lines) {
		return 0, 0, "", fmt.Errorf("malformed %q block in group %q", KeywordMaps, group)
	}
	start = k + 1

	depth := 1
	for m := start; m < len(lines); m++ {
		depth += strings.Count(lines[m], "{") - strings.Count(lines[m], "}")
		if depth == 0 {
			return start, m, inferIndent(lines, start, m), nil
		}
	}
	return 0, 0, "", fmt.Errorf("malformed %q block in group %q", KeywordMaps, group)
}

// inferIndent reuses the leading whitespace of the first existing entry in
// the block, falling back to the stock four tabs for an empty block.
func inferIndent(lines []string, start, end int) string {
	for i := start; i < end; i++ {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), `"`) {
			return lines[i][:len(lines[i])-len(strings.TrimLeft(lines[i], " \t"))]
		}
	}
	return fallbackIndent
}

// blockKeys returns the first quoted token of each entry line in the block.
func blockKeys(lines []string, start, end int) []string {
	var keys []string
	for i := start; i < end; i++ {
		stripped := strings.TrimSpace(lines[i])
		if strings.HasPrefix(stripped, `"`) {
			parts := strings.Split(stripped, `"`)
			if len(parts) > 1 {
				keys = append(keys, parts[1])
			}
		}
	}
	return keys
}
