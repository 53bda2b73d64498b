package gitclone

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// DirectoryStatus describes a prospective clone target.
type DirectoryStatus struct {
	Path        string `json:"path"`
	Exists      bool   `json:"exists"`
	IsDirectory bool   `json:"is_directory"`
	IsEmpty     bool   `json:"is_empty"`
	IsGitRepo   bool   `json:"is_git_repo"`
	FileCount   int    `json:"file_count"`
	SizeBytes   int64  `json:"size_bytes"`
}

// Inspect reports whether path exists, is empty, and holds a git repository.
// FileCount counts direct entries; SizeBytes sums regular files recursively.
func Inspect(path string) (*DirectoryStatus, error) {
	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	status := &DirectoryStatus{Path: expanded}

	info, err := os.Stat(expanded)
	if os.IsNotExist(err) {
		return status, nil
	}
	if err != nil {
		return nil, err
	}

	status.Exists = true
	if !info.IsDir() {
		return status, nil
	}
	status.IsDirectory = true

	entries, err := os.ReadDir(expanded)
	if err != nil {
		return nil, err
	}
	status.FileCount = len(entries)
	status.IsEmpty = len(entries) == 0

	if _, err := git.PlainOpen(expanded); err == nil {
		status.IsGitRepo = true
	}

	// Unreadable files are skipped rather than failing the whole walk.
	_ = filepath.WalkDir(expanded, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.Type().IsRegular() {
			if fi, err := d.Info(); err == nil {
				status.SizeBytes += fi.Size()
			}
		}
		return nil
	})

	return status, nil
}
