package overlay

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// metamodSearchPath is the search path entry that makes the engine load the
// plugin loader from csgo/addons/metamod.
const metamodSearchPath = "Game\tcsgo/addons/metamod"

// lowViolenceMarker anchors the insertion point: the patched entry must sit
// directly above the engine's low-violence override so it wins path lookups.
const lowViolenceMarker = "Game_LowViolence"

// PatchGameInfo inserts the plugin-loader search path into gameinfo.gi
// text. The patch is idempotent: text that already carries the entry is
// returned unchanged with changed=false. A file without the anchor line is
// an error since the insertion point cannot be determined.
func PatchGameInfo(text string) (patched string, changed bool, err error) {
	if strings.Contains(text, "csgo/addons/metamod") {
		return text, false, nil
	}

	lines := strings.Split(text, "\n")
	for i, ln := range lines {
		if !strings.Contains(ln, lowViolenceMarker) {
			continue
		}
		indent := ln[:len(ln)-len(strings.TrimLeft(ln, " \t"))]
		entry := indent + metamodSearchPath
		if strings.HasSuffix(ln, "\r") {
			// CRLF file: the anchor's terminator carries over.
			entry += "\r"
		}
		lines = append(lines[:i], append([]string{entry}, lines[i:]...)...)
		return strings.Join(lines, "\n"), true, nil
	}

	return text, false, fmt.Errorf("no %q entry in gameinfo", lowViolenceMarker)
}

// Diff renders a terminal-friendly diff between two file bodies, used by
// the dry-run modes of the patch and overlay commands.
func Diff(before, after string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	return dmp.DiffPrettyText(diffs)
}
