package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"agentsmd/internal/agentsdoc"
	"agentsmd/internal/docstore"
	"agentsmd/internal/llm"
	"agentsmd/internal/source"
)

// Pipeline runs the full generation flow: acquire repository, load source
// material, extract sections through the language model, merge with any
// previously generated document, and save the result.
type Pipeline struct {
	GitHubURL string
	LocalPath string

	Style             string
	BaseDir           string
	Model             string
	APIKey            string
	AnalyzeGitHistory bool
	FailedPRURL       string
	RevertLogLimit    int
}

// target is a resolved repository to analyze.
type target struct {
	dir     string
	name    string
	cleanup func()
}

func (p *Pipeline) Run(ctx context.Context) error {
	modelCfg, err := llm.ResolveModelConfig(p.Model, p.APIKey)
	if err != nil {
		return err
	}
	fmt.Printf("🤖 Using model: %s\n", modelCfg.Model)

	extractor, err := llm.NewExtractor(ctx, modelCfg)
	if err != nil {
		return fmt.Errorf("failed to create extractor: %w", err)
	}

	tgt, err := p.resolveTargetStage(ctx)
	if err != nil {
		return err
	}
	if tgt.cleanup != nil {
		defer tgt.cleanup()
	}

	rendered, err := p.loadTreeStage(tgt)
	if err != nil {
		return err
	}

	gitHistory, failedPR := p.historyStage(ctx, tgt)

	sections, err := p.extractStage(ctx, extractor, rendered, gitHistory, failedPR, tgt.name)
	if err != nil {
		return err
	}

	return p.compileAndSaveStage(sections, tgt.name)
}

// resolveTargetStage picks the repository to analyze: an explicit GitHub URL
// (cloned to a temp dir), an explicit local path, the GITHUB_REPO_URL
// environment variable, or the current directory as a last resort.
func (p *Pipeline) resolveTargetStage(ctx context.Context) (*target, error) {
	repoURL := strings.TrimSpace(p.GitHubURL)
	localPath := strings.TrimSpace(p.LocalPath)
	if repoURL == "" && localPath == "" {
		repoURL = strings.TrimSpace(os.Getenv("GITHUB_REPO_URL"))
	}
	if repoURL == "" && localPath == "" {
		localPath = "."
	}

	if repoURL != "" {
		tempDir, err := os.MkdirTemp("", "agentsmd-clone-*")
		if err != nil {
			return nil, fmt.Errorf("failed to create temp directory: %w", err)
		}
		fmt.Printf("📥 Cloning %s...\n", repoURL)
		if err := source.Clone(ctx, repoURL, tempDir); err != nil {
			os.RemoveAll(tempDir)
			return nil, fmt.Errorf("failed to clone repository: %w", err)
		}
		return &target{
			dir:     tempDir,
			name:    source.RepoNameFromURL(repoURL),
			cleanup: func() { os.RemoveAll(tempDir) },
		}, nil
	}

	absPath, err := filepath.Abs(localPath)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(absPath); err != nil {
		return nil, fmt.Errorf("local repository path does not exist: %s", absPath)
	}
	return &target{
		dir:  absPath,
		name: filepath.Base(absPath),
	}, nil
}

func (p *Pipeline) loadTreeStage(tgt *target) (string, error) {
	fmt.Printf("📂 Loading source tree from %s...\n", tgt.dir)
	tree, err := source.LoadTree(tgt.dir)
	if err != nil {
		return "", fmt.Errorf("failed to load source tree: %w", err)
	}
	tree.Drop("CONTENT")
	if tree.FileCount() == 0 {
		return "", fmt.Errorf("no analyzable source files found in %s", tgt.dir)
	}
	fmt.Printf("  -> %d files loaded.\n", tree.FileCount())
	return tree.Render(), nil
}

// historyStage gathers failure evidence. Both inputs are optional and their
// failures are warnings, never fatal.
func (p *Pipeline) historyStage(ctx context.Context, tgt *target) (gitHistory, failedPR string) {
	if p.AnalyzeGitHistory {
		fmt.Printf("🔍 Analyzing git history for reverted commits (limit: %d)...\n", p.RevertLogLimit)
		history, err := source.ExtractRevertedCommits(ctx, tgt.dir, p.RevertLogLimit)
		if err != nil {
			log.Printf("Warning: failed to extract git history: %v", err)
		} else if history == "" {
			fmt.Println("  -> No reverted commits found in recent history.")
		} else {
			gitHistory = history
		}
	}

	if strings.TrimSpace(p.FailedPRURL) != "" {
		fmt.Printf("🔍 Fetching failed pull request %s...\n", p.FailedPRURL)
		prData, err := source.NewPullRequestFetcher().FetchFailedPR(ctx, p.FailedPRURL)
		if err != nil {
			log.Printf("Warning: failed to fetch pull request: %v", err)
		} else {
			failedPR = prData
		}
	}
	return gitHistory, failedPR
}

func (p *Pipeline) extractStage(ctx context.Context, extractor llm.Extractor, rendered, gitHistory, failedPR, repoName string) (*agentsdoc.Sections, error) {
	fmt.Printf("🧠 Extracting %s sections for '%s'...\n", p.Style, repoName)
	sections, err := extractor.ExtractSections(ctx, rendered, repoName, p.Style)
	if err != nil {
		return nil, fmt.Errorf("section extraction failed: %w", err)
	}
	fmt.Printf("  -> %d sections extracted.\n", sections.Len())

	if gitHistory != "" || failedPR != "" {
		fmt.Println("🧠 Extracting lessons learned from failure history...")
		lessons, err := extractor.ExtractLessons(ctx, gitHistory, failedPR, repoName)
		if err != nil {
			log.Printf("Warning: lessons extraction failed: %v", err)
		} else {
			sections = agentsdoc.MergeSections(sections, lessons)
		}
	}
	return sections, nil
}

func (p *Pipeline) compileAndSaveStage(sections *agentsdoc.Sections, repoName string) error {
	store := docstore.NewStore(p.BaseDir)

	existing, err := store.LoadExisting(repoName)
	if err != nil {
		log.Printf("Warning: could not read existing document, regenerating from scratch: %v", err)
		existing = ""
	}
	if existing != "" {
		fmt.Println("📝 Merging with existing AGENTS.md...")
	}

	doc := agentsdoc.Compile(sections, repoName, p.Style, existing)
	if p.Style == agentsdoc.StyleStrict && len(strings.Fields(doc)) > 800 {
		fmt.Println("⚠️  AGENTS.md is quite long (over 800 words). Consider trimming to keep AI agents strictly focused on constraints!")
	}

	path, err := store.Save(repoName, doc)
	if err != nil {
		return err
	}
	fmt.Printf("🎉 Pipeline complete! AGENTS.md saved to %s\n", path)
	return nil
}
