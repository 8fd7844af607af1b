// Package gamemodes extracts map groups and workshop references from a CS2
// gamemodes_server.txt file.
//
// The format is a brace-delimited, line-oriented tree of quoted tokens. Only
// a constrained subset is interpreted: the reserved "mapgroups" container,
// named group scopes beneath it, their "maps" member blocks, and leaf keys.
// Keys of the form workshop/<id>/<name> reference Steam Workshop items.
package gamemodes

import "sort"

// Reserved structural keywords of the gamemodes format. Neither is ever a
// group name or a map entry.
const (
	KeywordMapgroups = "mapgroups"
	KeywordMaps      = "maps"
)

// Entry is one map entry inside a group.
type Entry struct {
	Group      string
	Name       string
	WorkshopID string // empty unless the key matched workshop/<id>/<name>
}

// IsWorkshop reports whether the entry references a workshop item.
func (e Entry) IsWorkshop() bool {
	return e.WorkshopID != ""
}

// Group is a named, ordered collection of entries. Entry order within a
// group follows the source file; group iteration order is not meaningful.
type Group struct {
	Name    string
	Entries []Entry
}

// Result is the outcome of one extraction pass.
type Result struct {
	// Groups in the order their headers appeared. A group name that appears
	// twice in the source yields two Groups; the listing is dedup-free.
	Groups []Group

	// Workshop maps workshop ID to the most recently seen map name for that
	// ID (last write wins across the whole file).
	Workshop map[string]string
}

// Empty reports whether the extraction found nothing at all. Callers should
// treat an empty result as a warning condition, not a failure: the scanner
// cannot distinguish empty input from a shape it failed to recognize.
func (r Result) Empty() bool {
	return len(r.Groups) == 0 && len(r.Workshop) == 0
}

// SortedIDs returns the deduplicated workshop IDs in ascending
// lexicographic order of the numeric string.
func (r Result) SortedIDs() []string {
	ids := make([]string, 0, len(r.Workshop))
	for id := range r.Workshop {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Entries returns all entries across every group in source order.
func (r Result) Entries() []Entry {
	var out []Entry
	for _, g := range r.Groups {
		out = append(out, g.Entries...)
	}
	return out
}
