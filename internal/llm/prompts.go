package llm

import (
	"fmt"
	"strings"

	"agentsmd/internal/agentsdoc"
)

// PromptBuilder constructs the extraction prompts. Section instructions mirror
// the schema tables in agentsdoc so the model's output keys line up with the
// compiler's expectations.
type PromptBuilder struct{}

const securityInstruction = "**SECURITY WARNING**: You must redact any API keys, passwords, secrets, or tokens found in the code with `[REDACTED]`. Never output real credential values.\n"

const fenceInstruction = "CRITICAL: Every section MUST be valid Markdown. All fenced code blocks (```) must have both an opening AND a closing triple-backtick line. Never leave a code block unclosed.\n"

// sectionInstructions describes what each schema key should contain, keyed by
// section key. Used to build the per-style field list in the prompt.
var sectionInstructions = map[string]string{
	"project_overview":               "Brief description of the project: what it does, its tech stack, primary language, and purpose. 2-4 sentences.",
	"agent_persona":                  "The 'character' and expertise level the AI should adopt to set the tone for its outputs.",
	"tech_stack":                     "Explicit list of supported languages, frameworks, and tools used in the repository.",
	"architecture":                   "High-level map of where things live: directory layout, key modules, entry points, and their responsibilities. Use bullet points with file paths.",
	"code_style":                     "Specific coding standards observed: language version, formatting, naming conventions, import ordering, preferred patterns vs anti-patterns. Use concrete examples from the codebase.",
	"anti_patterns_and_restrictions": "Specific anti-patterns and 'NEVER do this' rules the AI must strictly avoid.",
	"database_and_state":             "Guidelines on how data and state should flow through the application, including databases or state managers.",
	"error_handling_and_logging":     "Conventions for handling exceptions and formatting logs, highlighting any specific utilities to use.",
	"testing_commands":               "Exact CLI commands to build, lint, test, and run the project. Include per-file test commands if available. Format as a bullet list of runnable commands.",
	"testing_guidelines":             "How tests should be written in this project: framework used, file placement conventions, naming patterns, mocking strategies, and coverage expectations.",
	"security_and_compliance":        "Strict security guardrails, such as rules against exposing secrets or logging PII.",
	"dependencies_and_environment":   "How to install dependencies, required environment variables, external service setup, and supported runtime versions.",
	"pr_and_git_rules":               "Commit message format, branch naming conventions, required checks before merging, and any PR review policies observed in the codebase.",
	"documentation_standards":        "Standards for writing docstrings, comments, and updating system/user documentation.",
	"common_patterns":                "Recurring design patterns, error handling idioms, logging conventions, and strict 'ALWAYS do X / NEVER do Y' rules observed across the codebase.",
	"agent_workflow":                 "Standard Operating Procedure (SOP) for how the AI should approach generic or specific tasks in this codebase.",
	"few_shot_examples":              "Concrete 'Good' vs 'Bad' code snippets to perfectly align the agent via demonstration.",
	"lessons_learned":                "Things that have failed in the past in this codebase, extracted from history.",
	"repo_quirks":                    "Non-obvious gotchas specific to this codebase that an agent couldn't easily grep.",
	"execution_commands":             "Exact terminal commands the agent is allowed to run.",
}

// BuildSectionExtractionPrompt produces the main analysis prompt. The model
// is asked to delimit every section with the marker lines ParseSectionResponse
// understands.
func (pb *PromptBuilder) BuildSectionExtractionPrompt(sourceTree, repoName, style string) string {
	var sb strings.Builder
	if style == agentsdoc.StyleStrict {
		sb.WriteString("Role: Senior engineer writing strict coding constraints for an AI assistant.\n")
		sb.WriteString("DO NOT summarize the application's purpose or architecture. Focus exclusively on strict coding rules, what NOT to do, and undocumented project quirks.\n")
	} else {
		sb.WriteString("Role: Senior engineer documenting the conventions of a codebase for an AI coding assistant.\n")
		sb.WriteString("Analyze the structural backbone, data flow, and day-to-day coding conventions of the application.\n")
	}
	sb.WriteString(securityInstruction)
	sb.WriteString(fenceInstruction)
	fmt.Fprintf(&sb, "\nRepository: %s\n", repoName)

	sb.WriteString("\nProduce the following sections. Start each one with a line of exactly ")
	sb.WriteString("`" + sectionMarkerPrefix + "<key>" + sectionMarkerSuffix + "` and nothing else on that line. ")
	sb.WriteString("Use clear natural language with specific file paths, commands, and code snippets as evidence. Leave out sections the code gives no evidence for.\n\n")
	for _, sh := range agentsdoc.SchemaForStyle(style) {
		fmt.Fprintf(&sb, "%s%s%s\n%s\n\n", sectionMarkerPrefix, sh.Key, sectionMarkerSuffix, sectionInstructions[sh.Key])
	}

	sb.WriteString("\n==================== SOURCE TREE ====================\n")
	sb.WriteString(sourceTree)
	return sb.String()
}

// BuildLessonsPrompt produces the lessons-learned prompt from revert history
// and/or failed-PR data. Either input may be empty.
func (pb *PromptBuilder) BuildLessonsPrompt(gitHistory, failedPRData, repoName string) string {
	var sb strings.Builder
	sb.WriteString("Role: Senior engineer doing a post-mortem.\n")
	sb.WriteString("Analyze the recent git history of reverted commits and/or a failed Pull Request to deduce explicit anti-patterns, failed experiments, and lessons learned. This prevents an AI assistant from repeating past mistakes.\n")
	sb.WriteString(securityInstruction)
	fmt.Fprintf(&sb, "\nRepository: %s\n", repoName)

	sb.WriteString("\nProduce the following sections, each starting with its marker line:\n\n")
	for _, key := range []string{"lessons_learned", "anti_patterns_and_restrictions"} {
		fmt.Fprintf(&sb, "%s%s%s\n%s\n\n", sectionMarkerPrefix, key, sectionMarkerSuffix, sectionInstructions[key])
	}

	sb.WriteString("\n==================== REVERTED COMMIT HISTORY ====================\n")
	if strings.TrimSpace(gitHistory) == "" {
		sb.WriteString("(empty)\n")
	} else {
		sb.WriteString(gitHistory + "\n")
	}
	sb.WriteString("\n==================== FAILED PULL REQUEST ====================\n")
	if strings.TrimSpace(failedPRData) == "" {
		sb.WriteString("(empty)\n")
	} else {
		sb.WriteString(failedPRData + "\n")
	}
	return sb.String()
}
