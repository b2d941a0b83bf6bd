package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"agentsmd/internal/agentsdoc"
	"agentsmd/internal/config"
	"agentsmd/internal/llm"
	"agentsmd/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "agentsmd",
		Short: "Analyze a codebase and generate a vendor-neutral AGENTS.md",
	}
	configPath string

	githubRepository  string
	localRepository   string
	style             string
	modelArg          string
	baseDir           string
	analyzeGitHistory bool
	failedPR          string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the optional YAML config file")

	generateCmd.Flags().StringVar(&githubRepository, "github-repository", "", "Public GitHub repository URL to analyze")
	generateCmd.Flags().StringVar(&localRepository, "local-repository", "", "Absolute path to a local repository to analyze")
	generateCmd.Flags().StringVarP(&style, "style", "s", "", "Document style: comprehensive or strict")
	generateCmd.Flags().StringVarP(&modelArg, "model", "m", "", "LLM to use, e.g. 'gemini/gemini-2.5-pro' or a bare provider name")
	generateCmd.Flags().StringVar(&baseDir, "base-dir", "", "Directory AGENTS.md documents are written under")
	generateCmd.Flags().BoolVar(&analyzeGitHistory, "analyze-git-history", false, "Extract lessons learned from reverted commits")
	generateCmd.Flags().StringVar(&failedPR, "failed-pr", "", "URL of a failed GitHub pull request to learn from")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(modelsCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Generate or incrementally update AGENTS.md for a repository",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		localPath := localRepository
		if localPath == "" && len(args) > 0 {
			localPath = args[0]
		}

		resolvedStyle := style
		if resolvedStyle == "" {
			resolvedStyle = cfg.Document.Style
		}
		if resolvedStyle != agentsdoc.StyleComprehensive && resolvedStyle != agentsdoc.StyleStrict {
			log.Fatalf("Invalid style %q: must be %q or %q", resolvedStyle, agentsdoc.StyleComprehensive, agentsdoc.StyleStrict)
		}

		resolvedModel := modelArg
		if resolvedModel == "" {
			resolvedModel = cfg.AI.Model
		}
		resolvedBaseDir := baseDir
		if resolvedBaseDir == "" {
			resolvedBaseDir = cfg.Output.BaseDir
		}

		p := &pipeline.Pipeline{
			GitHubURL:         githubRepository,
			LocalPath:         localPath,
			Style:             resolvedStyle,
			BaseDir:           resolvedBaseDir,
			Model:             resolvedModel,
			APIKey:            cfg.AI.APIKey,
			AnalyzeGitHistory: analyzeGitHistory,
			FailedPRURL:       failedPR,
			RevertLogLimit:    cfg.Git.RevertLogLimit,
		}
		if err := p.Run(context.Background()); err != nil {
			log.Fatalf("Pipeline failed: %v", err)
		}
	},
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List all supported models",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(llm.ListSupportedModels())
	},
}
