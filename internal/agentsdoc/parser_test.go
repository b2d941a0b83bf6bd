package agentsdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSections_KnownHeadings(t *testing.T) {
	content := "# AGENTS.md — test\n" +
		"## Code Style & Strict Rules\n\n" +
		"* Rule 1\n* Rule 2\n\n" +
		"## Anti-Patterns & Restrictions\n\n" +
		"* Don't do X\n"

	sections := ParseSections(content)

	codeStyle, ok := sections.Get("code_style")
	require.True(t, ok)
	assert.Equal(t, "* Rule 1\n* Rule 2", codeStyle)

	antiPatterns, ok := sections.Get("anti_patterns_and_restrictions")
	require.True(t, ok)
	assert.Equal(t, "* Don't do X", antiPatterns)
}

func TestParseSections_HeadingCaseInsensitive(t *testing.T) {
	sections := ParseSections("## PROJECT OVERVIEW\n\noverview text\n")

	body, ok := sections.Get("project_overview")
	require.True(t, ok)
	assert.Equal(t, "overview text", body)
}

func TestParseSections_CustomHeadingKeepsRawText(t *testing.T) {
	content := "# AGENTS.md — test\n" +
		"## Custom Section\n* My private rule\n\n" +
		"## Code Style & Strict Rules\n* Type hint everything\n"

	sections := ParseSections(content)

	custom, ok := sections.Get("Custom Section")
	require.True(t, ok)
	assert.Equal(t, "* My private rule", custom)

	codeStyle, ok := sections.Get("code_style")
	require.True(t, ok)
	assert.Equal(t, "* Type hint everything", codeStyle)
}

func TestParseSections_IgnoresHeadingsInsideFences(t *testing.T) {
	content := "\n## Project Overview\nThis is the overview.\n\n" +
		"## Tech Stack\n```markdown\n## Not a real heading\n```\n- Python\n"

	sections := ParseSections(content)

	overview, ok := sections.Get("project_overview")
	require.True(t, ok)
	assert.Equal(t, "This is the overview.", overview)

	techStack, ok := sections.Get("tech_stack")
	require.True(t, ok)
	assert.Contains(t, techStack, "## Not a real heading")
	assert.Contains(t, techStack, "- Python")

	_, ok = sections.Get("Not a real heading")
	assert.False(t, ok, "heading inside a fence must not open a section")
}

func TestParseSections_EdgeCases(t *testing.T) {
	t.Run("no headings yields empty map", func(t *testing.T) {
		sections := ParseSections("just prose\n\nwith no structure\n")
		assert.Zero(t, sections.Len())
	})

	t.Run("empty document", func(t *testing.T) {
		assert.Zero(t, ParseSections("").Len())
	})

	t.Run("duplicate headings are last write wins", func(t *testing.T) {
		content := "## Tech Stack\nfirst body\n\n## Tech Stack\nsecond body\n"
		sections := ParseSections(content)

		body, ok := sections.Get("tech_stack")
		require.True(t, ok)
		assert.Equal(t, "second body", body)
		assert.Equal(t, 1, sections.Len())
	})

	t.Run("bold text is not a heading", func(t *testing.T) {
		content := "## Project Overview\nintro\n**## not a heading**\noutro\n"
		sections := ParseSections(content)

		body, ok := sections.Get("project_overview")
		require.True(t, ok)
		assert.Contains(t, body, "**## not a heading**")
		assert.Equal(t, 1, sections.Len())
	})

	t.Run("deeper headings stay inside the body", func(t *testing.T) {
		content := "## Code Style\nrules\n### Subheading\nmore rules\n"
		sections := ParseSections(content)

		body, ok := sections.Get("code_style")
		require.True(t, ok)
		assert.Contains(t, body, "### Subheading")
	})

	t.Run("interior blank lines are preserved", func(t *testing.T) {
		content := "## Code Style\n\nfirst paragraph\n\nsecond paragraph\n\n"
		sections := ParseSections(content)

		body, ok := sections.Get("code_style")
		require.True(t, ok)
		assert.Equal(t, "first paragraph\n\nsecond paragraph", body)
	})
}

func TestSections_PreservesInsertionOrder(t *testing.T) {
	s := NewSections()
	s.Set("b", "2")
	s.Set("a", "1")
	s.Set("c", "3")
	s.Set("a", "replaced")

	assert.Equal(t, []string{"b", "a", "c"}, s.Keys())

	body, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "replaced", body)
}
