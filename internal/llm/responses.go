package llm

import (
	"bufio"
	"strings"

	"agentsmd/internal/agentsdoc"
)

const (
	sectionMarkerPrefix = "<<<SECTION: "
	sectionMarkerSuffix = ">>>"
)

// ParseSectionResponse splits a model completion into named sections using
// the marker lines requested by the prompt. Text before the first marker is
// dropped (usually preamble chatter). Bodies are trimmed; empty ones are not
// recorded.
func ParseSectionResponse(text string) *agentsdoc.Sections {
	sections := agentsdoc.NewSections()

	var currentKey string
	var body []string

	flush := func() {
		if currentKey == "" {
			return
		}
		content := strings.TrimSpace(strings.Join(body, "\n"))
		if content != "" {
			sections.Set(currentKey, content)
		}
	}

	scanner := bufio.NewScanner(strings.NewReader(cleanMarkdownOutput(text)))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, sectionMarkerPrefix) && strings.HasSuffix(trimmed, sectionMarkerSuffix) {
			flush()
			currentKey = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(trimmed, sectionMarkerPrefix), sectionMarkerSuffix))
			body = body[:0]
			continue
		}
		if currentKey != "" {
			body = append(body, line)
		}
	}
	flush()

	return sections
}

// cleanMarkdownOutput strips the outer code fence wrapper models sometimes
// add around a whole markdown response.
func cleanMarkdownOutput(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```markdown") {
		text = strings.TrimPrefix(text, "```markdown")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") && strings.HasSuffix(text, "```") && strings.Count(text, "```") == 2 {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}
