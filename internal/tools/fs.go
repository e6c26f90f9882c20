// Package tools implements the handlers behind every registered tool.
// Each handler is a total function: it always returns a result envelope
// and reports failures through the envelope's error field.
package tools

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"mcptoolkit/internal/registry"
)

// ListFilesInput selects a directory and a non-recursive glob pattern.
type ListFilesInput struct {
	Directory string `json:"directory,omitempty" jsonschema:"Directory to list, defaults to the current directory."`
	Pattern   string `json:"pattern,omitempty" jsonschema:"Glob pattern applied non-recursively, defaults to *."`
}

// ListFiles expands the pattern inside the directory and partitions the
// matches into files and directories.
func ListFiles(ctx context.Context, in ListFilesInput) registry.Envelope {
	dir := in.Directory
	if dir == "" {
		dir = "."
	}
	pattern := in.Pattern
	if pattern == "" {
		pattern = "*"
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return registry.Failf("resolving directory %s: %v", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return registry.Failf("reading directory %s: %v", dir, err)
	}
	if !info.IsDir() {
		return registry.Failf("%s is not a directory", dir)
	}

	matches, err := filepath.Glob(filepath.Join(abs, pattern))
	if err != nil {
		return registry.Failf("invalid pattern %q: %v", pattern, err)
	}

	files := []string{}
	dirs := []string{}
	for _, match := range matches {
		st, err := os.Stat(match)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(abs, match)
		if err != nil {
			rel = match
		}
		if st.IsDir() {
			dirs = append(dirs, rel)
		} else {
			files = append(files, rel)
		}
	}

	return registry.Envelope{
		"directory":   abs,
		"pattern":     pattern,
		"files":       files,
		"directories": dirs,
		"total_files": len(files),
		"total_dirs":  len(dirs),
	}
}

// SearchFilesInput selects a directory subtree, a substring query, and an
// extension filter.
type SearchFilesInput struct {
	Directory string `json:"directory,omitempty" jsonschema:"Directory to search recursively, defaults to the current directory."`
	Query     string `json:"query,omitempty" jsonschema:"Substring to match case-insensitively against file contents."`
	FileType  string `json:"file_type,omitempty" jsonschema:"File extension filter such as .go, defaults to all files."`
}

// SearchFiles walks the directory recursively and reports every text file
// whose content contains the query, case-insensitively. Files that are
// not valid UTF-8 are skipped rather than aborting the search.
func SearchFiles(ctx context.Context, in SearchFilesInput) registry.Envelope {
	dir := in.Directory
	if dir == "" {
		dir = "."
	}
	fileType := in.FileType
	if fileType == "" {
		fileType = "*"
	}
	pattern := "*"
	if fileType != "*" {
		pattern = "*" + fileType
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return registry.Failf("resolving directory %s: %v", dir, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return registry.Failf("reading directory %s: %v", dir, err)
	}

	query := strings.ToLower(in.Query)
	results := []registry.Envelope{}
	walkErr := filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		matched, err := filepath.Match(pattern, d.Name())
		if err != nil || !matched {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil || !utf8.Valid(content) {
			return nil
		}
		if !strings.Contains(strings.ToLower(string(content)), query) {
			return nil
		}
		st, err := d.Info()
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(abs, path)
		if err != nil {
			rel = path
		}
		results = append(results, registry.Envelope{
			"file":     rel,
			"size":     st.Size(),
			"modified": st.ModTime().Format(time.RFC3339),
		})
		return nil
	})
	if walkErr != nil {
		return registry.Failf("searching %s: %v", dir, walkErr)
	}

	return registry.Envelope{
		"directory":     abs,
		"query":         in.Query,
		"file_type":     fileType,
		"results":       results,
		"total_matches": len(results),
	}
}

// CreateFileInput names the file to write and its content.
type CreateFileInput struct {
	FilePath  string `json:"file_path" jsonschema:"Path of the file to create."`
	Content   string `json:"content,omitempty" jsonschema:"Content to write, defaults to empty."`
	Overwrite bool   `json:"overwrite,omitempty" jsonschema:"Replace the file if it already exists."`
}

// CreateFile writes content to a path, creating parent directories as
// needed. An existing file is only replaced when overwrite is set.
func CreateFile(ctx context.Context, in CreateFileInput) registry.Envelope {
	if _, err := os.Stat(in.FilePath); err == nil && !in.Overwrite {
		return registry.Failf("file %s already exists; set overwrite to true to replace it", in.FilePath)
	}
	if dir := filepath.Dir(in.FilePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return registry.Failf("creating parent directories for %s: %v", in.FilePath, err)
		}
	}
	if err := os.WriteFile(in.FilePath, []byte(in.Content), 0o644); err != nil {
		return registry.Failf("writing %s: %v", in.FilePath, err)
	}

	abs, err := filepath.Abs(in.FilePath)
	if err != nil {
		abs = in.FilePath
	}
	st, err := os.Stat(in.FilePath)
	if err != nil {
		return registry.Failf("inspecting %s after write: %v", in.FilePath, err)
	}
	return registry.Envelope{
		"success":   true,
		"file_path": abs,
		"size":      st.Size(),
		"created":   st.ModTime().Format(time.RFC3339),
	}
}
