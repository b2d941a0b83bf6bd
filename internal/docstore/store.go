// Package docstore owns where AGENTS.md documents live on disk:
// {base_dir}/{normalized repo name}/AGENTS.md.
package docstore

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const fileName = "AGENTS.md"

// outerFence matches a code-fence wrapper around the whole document, which
// extraction output occasionally arrives in.
var outerFence = regexp.MustCompile("^```(?:markdown)?[ \t]*\n|```[ \t\n]*$")

type Store struct {
	baseDir string
}

func NewStore(baseDir string) *Store {
	if strings.TrimSpace(baseDir) == "" {
		baseDir = "projects"
	}
	return &Store{baseDir: baseDir}
}

// Path returns where the document for repoName lives.
func (s *Store) Path(repoName string) string {
	return filepath.Join(s.baseDir, normalizeRepoName(repoName), fileName)
}

// LoadExisting returns the previously saved document, or an empty string if
// none exists yet.
func (s *Store) LoadExisting(repoName string) (string, error) {
	data, err := os.ReadFile(s.Path(repoName))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read existing document: %w", err)
	}
	return string(data), nil
}

// Save writes the document, creating directories as needed and stripping any
// accidental outer fence wrapper first.
func (s *Store) Save(repoName, content string) (string, error) {
	clean := strings.TrimSpace(outerFence.ReplaceAllString(strings.TrimSpace(content), ""))

	path := s.Path(repoName)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(clean), 0644); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", fileName, err)
	}
	return path, nil
}

func normalizeRepoName(repoName string) string {
	return strings.ReplaceAll(strings.ToLower(repoName), " ", "-")
}
