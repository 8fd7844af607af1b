package gamemodes

import (
	"fmt"
	"strings"
)

// RenderListing writes the plain-text listing consumed by the server's motd
// tooling: one block per group, entries indented beneath the group name,
// workshop entries annotated with their ID.
func RenderListing(res Result) string {
	var b strings.Builder
	for i, g := range res.Groups {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(g.Name)
		b.WriteByte('\n')
		for _, e := range g.Entries {
			if e.IsWorkshop() {
				fmt.Fprintf(&b, "\t%s\t(workshop %s)\n", e.Name, e.WorkshopID)
			} else {
				fmt.Fprintf(&b, "\t%s\n", e.Name)
			}
		}
	}
	return b.String()
}

// RenderIDs writes the subscribed-IDs file body: one workshop ID per line,
// deduplicated, ascending. Empty result renders as an empty string rather
// than a lone newline.
func RenderIDs(res Result) string {
	ids := res.SortedIDs()
	if len(ids) == 0 {
		return ""
	}
	return strings.Join(ids, "\n") + "\n"
}
