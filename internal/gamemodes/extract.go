package gamemodes

import "strings"

// Extract scans gamemodes text in a single forward pass and collects every
// map entry under the reserved "mapgroups" section, together with the
// workshop IDs those entries reference.
//
// Extract never fails: malformed input degrades to a partial or empty
// Result. It is a pure function of its input and is safe to call
// concurrently.
//
// Two quirks of the format's reference tooling are reproduced on purpose
// rather than fixed:
//
//   - once the "mapgroups" marker has been seen the section is never left,
//     so text after its closing brace is still scanned under section rules;
//   - the active group is only cleared when the brace depth returns to zero,
//     not when the group's own scope closes.
func Extract(text string) Result {
	res := Result{Workshop: map[string]string{}}

	depth := 0
	inMapgroups := false
	cur := -1 // index of the active group in res.Groups, -1 for none

	for _, raw := range strings.Split(text, "\n") {
		l := scanLine(raw)

		if !inMapgroups && l.hasToken(KeywordMapgroups) {
			inMapgroups = true
		}

		if inMapgroups {
			if tok, ok := l.firstToken(); ok {
				switch {
				case isGroupHeader(l, tok, depth):
					res.Groups = append(res.Groups, Group{Name: tok})
					cur = len(res.Groups) - 1

				case cur >= 0 && l.hasToken(KeywordMaps) && l.opens > 0:
					// The group's member block opener carries no entry.

				case cur >= 0 && tok != KeywordMapgroups && tok != KeywordMaps:
					e := Entry{Group: res.Groups[cur].Name, Name: tok}
					if id, name, ok := splitWorkshopKey(tok); ok {
						e.Name = name
						e.WorkshopID = id
						res.Workshop[id] = name
					}
					res.Groups[cur].Entries = append(res.Groups[cur].Entries, e)
				}
			}
		}

		depth += l.opens - l.closes
		if depth < 0 {
			// Tolerate unbalanced trailing braces.
			depth = 0
		}
		if depth == 0 {
			cur = -1
		}
	}

	return res
}

// isGroupHeader decides whether a line introduces a new group: a quoted
// token that opens a scope at depth >= 1 inside the mapgroups section.
//
// This is positional, not grammatical. An unrelated quoted token that opens
// a scope at the same depth will be taken for a group header too; swapping
// this predicate for a real grammar is the place to fix that.
func isGroupHeader(l line, tok string, depth int) bool {
	if l.opens == 0 || depth < 1 {
		return false
	}
	return tok != KeywordMapgroups && tok != KeywordMaps
}
