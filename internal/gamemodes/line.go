package gamemodes

import "strings"

// line is the scanned form of one input line. The format is line-oriented:
// a line may open and close any number of scopes and carry any number of
// quoted tokens, but only the first token is ever structurally meaningful.
type line struct {
	opens  int      // count of '{'
	closes int      // count of '}'
	tokens []string // quoted tokens in order, quotes stripped
}

// scanLine extracts brace counts and quoted tokens from a raw line.
// Braces are counted as raw occurrences, quoted or not; no escaping is
// interpreted, and a token runs from one '"' to the next.
func scanLine(raw string) line {
	l := line{
		opens:  strings.Count(raw, "{"),
		closes: strings.Count(raw, "}"),
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] != '"' {
			continue
		}
		end := strings.IndexByte(raw[i+1:], '"')
		if end < 0 {
			// Unterminated quote: no token, braces already counted.
			break
		}
		l.tokens = append(l.tokens, raw[i+1:i+1+end])
		i += end + 1
	}
	return l
}

// firstToken returns the first non-empty quoted token, if any.
func (l line) firstToken() (string, bool) {
	for _, tok := range l.tokens {
		if tok != "" {
			return tok, true
		}
	}
	return "", false
}

// hasToken reports whether any quoted token equals s.
func (l line) hasToken(s string) bool {
	for _, tok := range l.tokens {
		if tok == s {
			return true
		}
	}
	return false
}

// splitWorkshopKey decomposes a key of the form workshop/<digits>/<name>.
// The name may itself contain slashes; everything after the second slash is
// kept verbatim. Returns ok=false for any other shape.
func splitWorkshopKey(key string) (id, name string, ok bool) {
	rest, found := strings.CutPrefix(key, "workshop/")
	if !found {
		return "", "", false
	}
	id, name, found = strings.Cut(rest, "/")
	if !found || id == "" || name == "" {
		return "", "", false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return "", "", false
		}
	}
	return id, name, true
}
