package llm

import (
	"context"

	"agentsmd/internal/agentsdoc"
)

// Extractor is the opaque extraction step: given rendered source material,
// produce named AGENTS.md section bodies. Implementations wrap a language
// model and may take many seconds per call; failures surface to the caller.
type Extractor interface {
	// ExtractSections analyzes a rendered source tree and returns one body
	// per schema key of the given style. Keys the model produced nothing for
	// are simply absent.
	ExtractSections(ctx context.Context, sourceTree, repoName, style string) (*agentsdoc.Sections, error)

	// ExtractLessons analyzes revert history and/or a failed pull request
	// and returns lessons_learned and anti_patterns_and_restrictions bodies.
	ExtractLessons(ctx context.Context, gitHistory, failedPRData, repoName string) (*agentsdoc.Sections, error)
}

// generator is the single provider-specific primitive: one prompt in, one
// completion out. Everything above it is shared across providers.
type generator interface {
	generate(ctx context.Context, prompt string) (string, error)
}
