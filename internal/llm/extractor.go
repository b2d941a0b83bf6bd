package llm

import (
	"context"

	"agentsmd/internal/agentsdoc"
)

// textExtractor implements Extractor on top of any provider generator. All
// prompt construction and response parsing is shared; providers only differ
// in how a prompt becomes a completion.
type textExtractor struct {
	gen           generator
	promptBuilder *PromptBuilder
}

func newTextExtractor(gen generator) *textExtractor {
	return &textExtractor{
		gen:           gen,
		promptBuilder: &PromptBuilder{},
	}
}

func (e *textExtractor) ExtractSections(ctx context.Context, sourceTree, repoName, style string) (*agentsdoc.Sections, error) {
	prompt := e.promptBuilder.BuildSectionExtractionPrompt(sourceTree, repoName, style)
	resp, err := e.gen.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return ParseSectionResponse(resp), nil
}

func (e *textExtractor) ExtractLessons(ctx context.Context, gitHistory, failedPRData, repoName string) (*agentsdoc.Sections, error) {
	prompt := e.promptBuilder.BuildLessonsPrompt(gitHistory, failedPRData, repoName)
	resp, err := e.gen.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return ParseSectionResponse(resp), nil
}
