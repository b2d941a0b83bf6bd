package source

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

// Node is one entry of a loaded source tree: a file with Content, or a
// directory with Children keyed by path segment.
type Node struct {
	Content  string
	Children map[string]*Node
}

func (n *Node) IsDir() bool {
	return n.Children != nil
}

// maxFileChars caps how much of a single file is loaded; oversized files are
// skipped entirely rather than truncated so the extractor never sees a
// half-file.
const maxFileChars = 500000

var allowedExtensions = map[string]bool{
	".py": true, ".js": true, ".ts": true, ".jsx": true, ".tsx": true,
	".vue": true, ".java": true, ".md": true, ".json": true, ".yml": true,
	".yaml": true, ".txt": true, ".html": true, ".css": true, ".scss": true,
	".less": true, ".c": true, ".cpp": true, ".h": true, ".hpp": true,
	".cs": true, ".go": true, ".rb": true, ".php": true, ".rs": true,
	".sh": true, ".swift": true, ".kt": true, ".sql": true, ".xml": true,
	".toml": true, ".ini": true, ".dart": true, ".scala": true, ".r": true,
	".m": true, ".pl": true,
}

var ignoredDirs = map[string]bool{
	"node_modules": true, "__pycache__": true, "venv": true, "env": true,
	"dist": true, "build": true, "target": true, "vendor": true, "bin": true,
	"obj": true, "out": true, "coverage": true, "logs": true, "tmp": true,
	"temp": true, "packages": true, "pkg": true,
}

// LoadTree recursively loads a repository directory into an in-memory tree,
// skipping hidden entries, build/cache directories, binary or undecodable
// files, unrecognized extensions, and oversized files.
func LoadTree(rootDir string) (*Node, error) {
	entries, err := os.ReadDir(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", rootDir, err)
	}

	root := &Node{Children: make(map[string]*Node)}
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || ignoredDirs[name] {
			continue
		}

		path := filepath.Join(rootDir, name)
		if entry.IsDir() {
			child, err := LoadTree(path)
			if err != nil {
				log.Printf("Skipping directory %s: %v", path, err)
				continue
			}
			root.Children[name] = child
			continue
		}

		if !allowedExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("File %s skipped due to read error: %v", path, err)
			continue
		}
		if !utf8.Valid(data) {
			log.Printf("File %s skipped due to encoding issue", path)
			continue
		}
		if len(data) >= maxFileChars {
			log.Printf("File %s skipped due to being too large (%d chars)", path, len(data))
			continue
		}
		root.Children[name] = &Node{Content: string(data)}
	}

	return root, nil
}

// Drop removes a top-level entry from the tree if present.
func (n *Node) Drop(name string) {
	if n.Children != nil {
		delete(n.Children, name)
	}
}

// FileCount returns the number of files in the tree.
func (n *Node) FileCount() int {
	if !n.IsDir() {
		return 1
	}
	count := 0
	for _, child := range n.Children {
		count += child.FileCount()
	}
	return count
}

// Render flattens the tree into prompt-ready text: one delimited block per
// file, in sorted path order so output is deterministic.
func (n *Node) Render() string {
	var sb strings.Builder
	n.render(&sb, "")
	return sb.String()
}

func (n *Node) render(sb *strings.Builder, prefix string) {
	if !n.IsDir() {
		fmt.Fprintf(sb, "=== FILE: %s ===\n%s\n\n", prefix, strings.TrimRight(n.Content, "\n"))
		return
	}
	names := make([]string, 0, len(n.Children))
	for name := range n.Children {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		childPrefix := name
		if prefix != "" {
			childPrefix = prefix + "/" + name
		}
		n.Children[name].render(sb, childPrefix)
	}
}
