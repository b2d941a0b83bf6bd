package agentsdoc

import "strings"

// MergeSectionContent merges a freshly extracted section body into an
// existing one. Lines are compared by normalized form (whitespace collapsed,
// trimmed, lowercased) so a re-extracted rule is never duplicated even when
// its spacing or casing drifted. The existing body keeps its original lines
// and order; only genuinely new lines are appended.
//
// Deduplication is strictly per line: re-sent fenced blocks dedupe cleanly,
// but new lines landing inside an existing fence can leave the fence count
// unbalanced. Compile patches that at render time.
func MergeSectionContent(existing, incoming string) string {
	existingLines := strings.Split(existing, "\n")
	seen := make(map[string]struct{}, len(existingLines))
	for _, line := range existingLines {
		if norm := normalizeLine(line); norm != "" {
			seen[norm] = struct{}{}
		}
	}

	merged := append([]string(nil), existingLines...)
	for _, line := range strings.Split(incoming, "\n") {
		norm := normalizeLine(line)
		if norm == "" {
			// Blank lines always pass through to preserve paragraph breaks.
			merged = append(merged, line)
			continue
		}
		if _, dup := seen[norm]; dup {
			continue
		}
		seen[norm] = struct{}{}
		merged = append(merged, line)
	}

	return trimBlankEdges(merged)
}

// MergeSections reconciles an existing document's sections with freshly
// extracted ones. Keys present only in the existing map (custom sections)
// pass through untouched; that is what keeps manual edits alive across runs.
func MergeSections(existing, incoming *Sections) *Sections {
	merged := existing.Clone()
	for _, key := range incoming.Keys() {
		body, _ := incoming.Get(key)
		body = strings.TrimSpace(body)
		if body == "" {
			continue
		}
		if prior, ok := merged.Get(key); ok {
			merged.Set(key, MergeSectionContent(prior, body))
		} else {
			merged.Set(key, body)
		}
	}
	return merged
}

// normalizeLine is the semantic-equality key for a line: runs of whitespace
// collapse to single spaces, edges trim, case folds. Blank lines normalize to
// the empty string.
func normalizeLine(line string) string {
	return strings.ToLower(strings.Join(strings.Fields(line), " "))
}
