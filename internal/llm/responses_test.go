package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"agentsmd/internal/agentsdoc"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSectionResponse(t *testing.T) {
	text := "Here is my analysis.\n" +
		"<<<SECTION: project_overview>>>\n" +
		"A CLI tool.\n\n" +
		"<<<SECTION: code_style>>>\n" +
		"* gofmt everything\n" +
		"```go\nvar x int\n```\n" +
		"<<<SECTION: empty_section>>>\n" +
		"   \n"

	sections := ParseSectionResponse(text)

	overview, ok := sections.Get("project_overview")
	require.True(t, ok)
	assert.Equal(t, "A CLI tool.", overview)

	codeStyle, ok := sections.Get("code_style")
	require.True(t, ok)
	assert.Contains(t, codeStyle, "* gofmt everything")
	assert.Contains(t, codeStyle, "```go")

	_, ok = sections.Get("empty_section")
	assert.False(t, ok, "blank bodies are not recorded")

	assert.Equal(t, []string{"project_overview", "code_style"}, sections.Keys())
}

func TestParseSectionResponse_NoMarkers(t *testing.T) {
	sections := ParseSectionResponse("just a wall of text with no markers")
	assert.Zero(t, sections.Len())
}

func TestCleanMarkdownOutput(t *testing.T) {
	t.Run("strips markdown wrapper", func(t *testing.T) {
		out := cleanMarkdownOutput("```markdown\n# Title\nbody\n```")
		assert.Equal(t, "# Title\nbody", out)
	})

	t.Run("strips bare wrapper", func(t *testing.T) {
		out := cleanMarkdownOutput("```\nplain\n```")
		assert.Equal(t, "plain", out)
	})

	t.Run("leaves interior fences alone", func(t *testing.T) {
		text := "# Doc\n```go\nvar x int\n```\ntail"
		assert.Equal(t, text, cleanMarkdownOutput(text))
	})
}

func TestPromptBuilder_SectionExtractionPrompt(t *testing.T) {
	pb := &PromptBuilder{}

	t.Run("comprehensive lists all schema keys", func(t *testing.T) {
		prompt := pb.BuildSectionExtractionPrompt("=== FILE: main.go ===\npackage main", "demo", agentsdoc.StyleComprehensive)
		for _, sh := range agentsdoc.ComprehensiveSections {
			assert.Contains(t, prompt, "<<<SECTION: "+sh.Key+">>>")
		}
		assert.Contains(t, prompt, "=== FILE: main.go ===")
		assert.Contains(t, prompt, "SECURITY WARNING")
	})

	t.Run("strict stays constraint-focused", func(t *testing.T) {
		prompt := pb.BuildSectionExtractionPrompt("tree", "demo", agentsdoc.StyleStrict)
		assert.Contains(t, prompt, "DO NOT summarize")
		assert.Contains(t, prompt, "<<<SECTION: repo_quirks>>>")
		assert.NotContains(t, prompt, "<<<SECTION: few_shot_examples>>>")
	})
}

func TestPromptBuilder_LessonsPrompt(t *testing.T) {
	pb := &PromptBuilder{}
	prompt := pb.BuildLessonsPrompt("commit deadbeef reverted", "", "demo")

	assert.Contains(t, prompt, "<<<SECTION: lessons_learned>>>")
	assert.Contains(t, prompt, "<<<SECTION: anti_patterns_and_restrictions>>>")
	assert.Contains(t, prompt, "commit deadbeef reverted")
	assert.Contains(t, prompt, "FAILED PULL REQUEST")
	assert.Contains(t, prompt, "(empty)")
}

func TestOpenAIGenerator_EndpointNormalization(t *testing.T) {
	cases := map[string]string{
		"":                       "https://api.openai.com/v1/chat/completions",
		"https://proxy.local":    "https://proxy.local/v1/chat/completions",
		"https://proxy.local/v1": "https://proxy.local/v1/chat/completions",
		"https://proxy.local/v1/chat/completions": "https://proxy.local/v1/chat/completions",
	}
	for baseURL, want := range cases {
		gen := newOpenAIGenerator("key", "gpt-5.2", baseURL)
		assert.Equal(t, want, gen.endpoint, "baseURL=%q", baseURL)
	}
}

func TestTextExtractor_EndToEndAgainstStub(t *testing.T) {
	completion := "<<<SECTION: code_style>>>\n* Use tabs\n" +
		"<<<SECTION: execution_commands>>>\n```bash\ngo test ./...\n```\n"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		resp := `{"choices":[{"message":{"role":"assistant","content":` + jsonEscape(completion) + `}}]}`
		_, _ = w.Write([]byte(resp))
	}))
	defer server.Close()

	ext := newTextExtractor(newOpenAIGenerator("key", "gpt-5.2", server.URL))
	sections, err := ext.ExtractSections(context.Background(), "tree", "demo", agentsdoc.StyleStrict)
	require.NoError(t, err)

	codeStyle, ok := sections.Get("code_style")
	require.True(t, ok)
	assert.Equal(t, "* Use tabs", codeStyle)

	cmds, ok := sections.Get("execution_commands")
	require.True(t, ok)
	assert.Contains(t, cmds, "go test ./...")
}

func jsonEscape(s string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "\"", "\\\"", "\n", "\\n")
	return "\"" + replacer.Replace(s) + "\""
}
