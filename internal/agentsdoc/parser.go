package agentsdoc

import (
	"bufio"
	"strings"
)

// ParseSections splits an AGENTS.md document into its sections. Sections are
// separated by second-level headings (`## `). Headings whose text matches a
// schema heading (case-insensitive, either style) are keyed by the schema key;
// anything else is keyed by its raw heading text, which is how operator-written
// custom sections survive a round trip.
//
// A line that merely looks like a heading inside a fenced code block is body
// text, never a boundary. A heading repeated verbatim keeps the first
// occurrence's position but the later body wins.
func ParseSections(content string) *Sections {
	sections := NewSections()

	var currentKey string
	var currentBody []string
	insideFence := false

	flush := func() {
		if currentKey == "" {
			return
		}
		sections.Set(currentKey, trimBlankEdges(currentBody))
	}

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			insideFence = !insideFence
			if currentKey != "" {
				currentBody = append(currentBody, line)
			}
			continue
		}

		if !insideFence && isSectionHeading(trimmed) {
			flush()
			heading := strings.TrimSpace(trimmed[3:])
			key, known := KeyForHeading(heading)
			if !known {
				key = heading
			}
			currentKey = key
			currentBody = currentBody[:0]
			continue
		}

		if currentKey != "" {
			currentBody = append(currentBody, line)
		}
	}
	flush()

	return sections
}

// isSectionHeading reports whether a trimmed line is a level-2 markdown
// heading. Deeper headings and the document title stay inside bodies.
func isSectionHeading(trimmed string) bool {
	return strings.HasPrefix(trimmed, "## ") && !strings.HasPrefix(trimmed, "###")
}

// trimBlankEdges joins lines, dropping leading and trailing blank lines while
// preserving interior structure verbatim.
func trimBlankEdges(lines []string) string {
	start := 0
	end := len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
