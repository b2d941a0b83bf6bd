package agentsdoc

import "strings"

// Compile renders the final AGENTS.md document from freshly extracted
// sections. When existingContent is non-empty it is parsed back into sections
// and the new content is merged into it line-by-line, so repeated runs
// accumulate guidance instead of overwriting manual edits.
//
// Known sections are emitted in schema order for the chosen style; everything
// else (custom sections) follows in first-seen order under its original
// heading text. The result never contains an unterminated code fence: an odd
// fence-marker count gets a closing fence appended.
//
// Compile never fails. Malformed input degrades to a smaller document, not an
// error.
func Compile(newSections *Sections, repoName, style, existingContent string) string {
	var processed *Sections
	if strings.TrimSpace(existingContent) != "" {
		processed = MergeSections(ParseSections(existingContent), newSections)
	} else {
		processed = NewSections()
		for _, key := range newSections.Keys() {
			body, _ := newSections.Get(key)
			if body = strings.TrimSpace(body); body != "" {
				processed.Set(key, body)
			}
		}
	}

	parts := []string{"# AGENTS.md — " + repoName}
	emitted := make(map[string]bool)

	for _, sh := range SchemaForStyle(style) {
		body, ok := processed.Get(sh.Key)
		if !ok || strings.TrimSpace(body) == "" {
			continue
		}
		parts = append(parts, "## "+sh.Heading+"\n\n"+strings.TrimSpace(body))
		emitted[sh.Key] = true
	}

	// Custom and off-style sections survive indefinitely across runs.
	for _, key := range processed.Keys() {
		if emitted[key] {
			continue
		}
		body, _ := processed.Get(key)
		if strings.TrimSpace(body) == "" {
			continue
		}
		heading := key
		if h, ok := headingForKey(key); ok {
			heading = h
		}
		parts = append(parts, "## "+heading+"\n\n"+strings.TrimSpace(body))
	}

	doc := strings.Join(parts, "\n\n")
	if countFenceMarkers(doc)%2 != 0 {
		doc += "\n```"
	}
	return doc
}

// headingForKey finds the display heading for a schema key, preferring the
// comprehensive table. Used for known keys that fell outside the selected
// style's schema.
func headingForKey(key string) (string, bool) {
	for _, schema := range [][]SectionHeading{ComprehensiveSections, StrictSections} {
		for _, sh := range schema {
			if sh.Key == key {
				return sh.Heading, true
			}
		}
	}
	return "", false
}

// countFenceMarkers counts fence-delimiter lines the same way the parser
// does, so balance is judged consistently end to end.
func countFenceMarkers(doc string) int {
	count := 0
	for _, line := range strings.Split(doc, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			count++
		}
	}
	return count
}
