package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"agentsmd/internal/agentsdoc"
	"agentsmd/internal/docstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExtractor struct {
	sections    map[string]string
	lessons     map[string]string
	lessonCalls int
}

func (f *fakeExtractor) ExtractSections(_ context.Context, _, _, _ string) (*agentsdoc.Sections, error) {
	out := agentsdoc.NewSections()
	for key, body := range f.sections {
		out.Set(key, body)
	}
	return out, nil
}

func (f *fakeExtractor) ExtractLessons(_ context.Context, _, _, _ string) (*agentsdoc.Sections, error) {
	f.lessonCalls++
	out := agentsdoc.NewSections()
	for key, body := range f.lessons {
		out.Set(key, body)
	}
	return out, nil
}

func TestResolveTargetStage(t *testing.T) {
	t.Run("explicit local path", func(t *testing.T) {
		dir := t.TempDir()
		p := &Pipeline{LocalPath: dir}

		tgt, err := p.resolveTargetStage(context.Background())
		require.NoError(t, err)
		assert.Equal(t, dir, tgt.dir)
		assert.Equal(t, filepath.Base(dir), tgt.name)
		assert.Nil(t, tgt.cleanup)
	})

	t.Run("missing local path fails", func(t *testing.T) {
		p := &Pipeline{LocalPath: "/definitely/not/a/path"}
		_, err := p.resolveTargetStage(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("defaults to current directory", func(t *testing.T) {
		t.Setenv("GITHUB_REPO_URL", "")
		p := &Pipeline{}

		tgt, err := p.resolveTargetStage(context.Background())
		require.NoError(t, err)
		cwd, _ := os.Getwd()
		assert.Equal(t, cwd, tgt.dir)
	})
}

func TestLoadTreeStage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "CONTENT"), []byte("stray"), 0644))

	p := &Pipeline{}
	rendered, err := p.loadTreeStage(&target{dir: dir, name: "demo"})
	require.NoError(t, err)

	assert.Contains(t, rendered, "main.go")
	assert.NotContains(t, rendered, "stray")
}

func TestLoadTreeStage_EmptyRepoFails(t *testing.T) {
	p := &Pipeline{}
	_, err := p.loadTreeStage(&target{dir: t.TempDir(), name: "empty"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no analyzable source files")
}

func TestExtractStage_MergesLessons(t *testing.T) {
	fake := &fakeExtractor{
		sections: map[string]string{
			"code_style":      "* gofmt",
			"lessons_learned": "* old lesson",
		},
		lessons: map[string]string{
			"lessons_learned": "* reverting X broke Y",
		},
	}
	p := &Pipeline{Style: agentsdoc.StyleStrict}

	sections, err := p.extractStage(context.Background(), fake, "tree", "history text", "", "demo")
	require.NoError(t, err)
	assert.Equal(t, 1, fake.lessonCalls)

	lessons, ok := sections.Get("lessons_learned")
	require.True(t, ok)
	assert.Contains(t, lessons, "* old lesson")
	assert.Contains(t, lessons, "* reverting X broke Y")
}

func TestExtractStage_SkipsLessonsWithoutEvidence(t *testing.T) {
	fake := &fakeExtractor{sections: map[string]string{"code_style": "* rule"}}
	p := &Pipeline{Style: agentsdoc.StyleStrict}

	_, err := p.extractStage(context.Background(), fake, "tree", "", "", "demo")
	require.NoError(t, err)
	assert.Zero(t, fake.lessonCalls)
}

func TestCompileAndSaveStage_AccumulatesAcrossRuns(t *testing.T) {
	baseDir := t.TempDir()
	p := &Pipeline{Style: agentsdoc.StyleStrict, BaseDir: baseDir}

	first := agentsdoc.NewSections()
	first.Set("code_style", "* Rule A")
	require.NoError(t, p.compileAndSaveStage(first, "demo"))

	second := agentsdoc.NewSections()
	second.Set("code_style", "* Rule A\n* Rule B")
	require.NoError(t, p.compileAndSaveStage(second, "demo"))

	store := docstore.NewStore(baseDir)
	doc, err := store.LoadExisting("demo")
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(doc, "* Rule A"))
	assert.Contains(t, doc, "* Rule B")
	assert.Equal(t, 1, strings.Count(doc, "## Code Style & Strict Rules"))
}
