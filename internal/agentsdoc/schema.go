package agentsdoc

import "strings"

// SectionHeading pairs a stable section key with its display heading.
type SectionHeading struct {
	Key     string
	Heading string
}

// Style selects which section schema governs the final document layout.
const (
	StyleComprehensive = "comprehensive"
	StyleStrict        = "strict"
)

// ComprehensiveSections is the full layout. Order determines the final
// document layout, so entries must not be reordered casually.
var ComprehensiveSections = []SectionHeading{
	{"project_overview", "Project Overview"},
	{"agent_persona", "Agent Persona"},
	{"tech_stack", "Tech Stack"},
	{"architecture", "Architecture"},
	{"code_style", "Code Style"},
	{"anti_patterns_and_restrictions", "Anti-Patterns & Restrictions"},
	{"database_and_state", "Database & State Management"},
	{"error_handling_and_logging", "Error Handling & Logging"},
	{"testing_commands", "Testing Commands"},
	{"testing_guidelines", "Testing Guidelines"},
	{"security_and_compliance", "Security & Compliance"},
	{"dependencies_and_environment", "Dependencies & Environment"},
	{"pr_and_git_rules", "PR & Git Rules"},
	{"documentation_standards", "Documentation Standards"},
	{"common_patterns", "Common Patterns"},
	{"agent_workflow", "Agent Workflow / SOP"},
	{"few_shot_examples", "Few-Shot Examples"},
}

// StrictSections is the constraints-only layout for agents that should stay
// focused on rules rather than context.
var StrictSections = []SectionHeading{
	{"code_style", "Code Style & Strict Rules"},
	{"anti_patterns_and_restrictions", "Anti-Patterns & Restrictions"},
	{"security_and_compliance", "Security & Compliance"},
	{"lessons_learned", "Lessons Learned (Past Failures)"},
	{"repo_quirks", "Repository Quirks & Gotchas"},
	{"execution_commands", "Execution Commands"},
}

// headingToKey maps lowercased display headings from both styles back to
// their section keys. Built once from the schema tables.
var headingToKey = buildHeadingLookup()

func buildHeadingLookup() map[string]string {
	lookup := make(map[string]string, len(ComprehensiveSections)+len(StrictSections))
	for _, schema := range [][]SectionHeading{ComprehensiveSections, StrictSections} {
		for _, sh := range schema {
			lookup[strings.ToLower(sh.Heading)] = sh.Key
		}
	}
	return lookup
}

// SchemaForStyle returns the ordered heading table for the given style.
// Unknown styles fall back to comprehensive.
func SchemaForStyle(style string) []SectionHeading {
	if style == StyleStrict {
		return StrictSections
	}
	return ComprehensiveSections
}

// KeyForHeading resolves a display heading to its schema key,
// case-insensitively across both styles. The second result reports whether
// the heading is part of any schema.
func KeyForHeading(heading string) (string, bool) {
	key, ok := headingToKey[strings.ToLower(strings.TrimSpace(heading))]
	return key, ok
}
