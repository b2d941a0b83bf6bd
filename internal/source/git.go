package source

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// maxHistoryChars truncates extracted git history so a pathological revert
// log cannot blow the extraction context window.
const maxHistoryChars = 100000

// Clone shallow-clones a public repository into destDir.
func Clone(ctx context.Context, repoURL, destDir string) error {
	cmd := exec.CommandContext(ctx, "git", "clone", "--depth", "1", repoURL, destDir)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git clone failed: %s: %w", strings.TrimSpace(string(output)), err)
	}
	return nil
}

// ExtractRevertedCommits returns the messages and patches of recent commits
// mentioning "revert", used to deduce past failures. An empty string means no
// revert history was found; errors here are collaborator warnings, never
// pipeline-fatal.
func ExtractRevertedCommits(ctx context.Context, repoDir string, limit int) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "log", "-n", strconv.Itoa(limit), "--grep=revert", "-i", "--patch")
	cmd.Dir = repoDir
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git log failed: %w", err)
	}

	diffText := string(output)
	if len(diffText) > maxHistoryChars {
		diffText = diffText[:maxHistoryChars] + "\n... [TRUNCATED DUE TO LENGTH]"
	}
	if strings.TrimSpace(diffText) == "" {
		return "", nil
	}
	return diffText, nil
}

// RepoNameFromURL derives a repository name from a GitHub URL, stripping a
// trailing slash and ".git" suffix.
func RepoNameFromURL(repoURL string) string {
	name := strings.TrimRight(strings.TrimSpace(repoURL), "/")
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	return strings.TrimSuffix(name, ".git")
}
