// Package gitclone clones template repositories and inspects target
// directories. Clones are rewired so the template's upstream lives on a
// memex_universe remote, leaving origin free for the user's own fork.
package gitclone

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"go.uber.org/zap"
)

// TemplateRemote is the remote name given to the template's upstream after
// a clone.
const TemplateRemote = "memex_universe"

// ErrTargetNotEmpty is returned when the clone target exists and already
// has contents.
var ErrTargetNotEmpty = errors.New("target directory exists and is not empty")

// CloneResult describes a completed clone.
type CloneResult struct {
	Path          string    `json:"path"`
	RemoteURL     string    `json:"remote_url"`
	Branch        string    `json:"branch"`
	CommitID      string    `json:"commit_id"`
	CommitMessage string    `json:"commit_message"`
	CommitAuthor  string    `json:"commit_author"`
	CommitTime    time.Time `json:"commit_time"`
}

// Cloner clones repositories with a bounded timeout.
type Cloner struct {
	defaultBranch string
	timeout       time.Duration
	logger        *zap.Logger
}

// NewCloner creates a Cloner. defaultBranch applies when CloneOptions omit
// a branch; a non-positive timeout disables the bound.
func NewCloner(defaultBranch string, timeout time.Duration, logger *zap.Logger) (*Cloner, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if defaultBranch == "" {
		defaultBranch = "main"
	}
	return &Cloner{
		defaultBranch: defaultBranch,
		timeout:       timeout,
		logger:        logger,
	}, nil
}

// CloneOptions parameterize a single clone.
type CloneOptions struct {
	URL    string
	Target string
	Branch string
}

// Clone clones opts.URL into opts.Target, renames the origin remote to
// TemplateRemote, and reports the checked-out commit. A failed clone leaves
// no partial directory behind.
func (c *Cloner) Clone(ctx context.Context, opts CloneOptions) (*CloneResult, error) {
	if opts.URL == "" {
		return nil, fmt.Errorf("repository url is required")
	}
	if opts.Target == "" {
		return nil, fmt.Errorf("target directory is required")
	}

	target, err := ExpandPath(opts.Target)
	if err != nil {
		return nil, err
	}

	branch := opts.Branch
	if branch == "" {
		branch = c.defaultBranch
	}

	status, err := Inspect(target)
	if err != nil {
		return nil, fmt.Errorf("inspecting target: %w", err)
	}
	if status.Exists {
		if !status.IsDirectory {
			return nil, fmt.Errorf("target path %s exists but is not a directory", target)
		}
		if !status.IsEmpty {
			return nil, fmt.Errorf("%w: %s", ErrTargetNotEmpty, target)
		}
	} else if parent := filepath.Dir(target); parent != "" {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return nil, fmt.Errorf("creating parent directory: %w", err)
		}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	c.logger.Info("cloning template repository",
		zap.String("url", opts.URL),
		zap.String("target", target),
		zap.String("branch", branch))

	repo, err := git.PlainCloneContext(ctx, target, false, &git.CloneOptions{
		URL:           opts.URL,
		ReferenceName: plumbing.NewBranchReferenceName(branch),
		SingleBranch:  true,
	})
	if err != nil {
		Cleanup(target, c.logger)
		return nil, fmt.Errorf("cloning %s: %w", opts.URL, err)
	}

	result, err := c.finishClone(repo, target, opts.URL, branch)
	if err != nil {
		Cleanup(target, c.logger)
		return nil, err
	}

	c.logger.Info("clone complete",
		zap.String("target", target),
		zap.String("commit", result.CommitID))
	return result, nil
}

// finishClone renames the upstream remote and collects commit metadata.
func (c *Cloner) finishClone(repo *git.Repository, target, url, branch string) (*CloneResult, error) {
	if _, err := repo.Remote(git.DefaultRemoteName); err == nil {
		if err := repo.DeleteRemote(git.DefaultRemoteName); err != nil {
			return nil, fmt.Errorf("removing origin remote: %w", err)
		}
	}
	if _, err := repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: TemplateRemote,
		URLs: []string{url},
	}); err != nil {
		return nil, fmt.Errorf("creating %s remote: %w", TemplateRemote, err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("reading HEAD: %w", err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("reading HEAD commit: %w", err)
	}

	return &CloneResult{
		Path:          target,
		RemoteURL:     url,
		Branch:        branch,
		CommitID:      head.Hash().String(),
		CommitMessage: strings.TrimSpace(commit.Message),
		CommitAuthor:  commit.Author.Name,
		CommitTime:    commit.Author.When,
	}, nil
}

// Cleanup removes a clone target after a failure. Errors are logged, not
// returned: cleanup is best effort.
func Cleanup(target string, logger *zap.Logger) {
	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		return
	}
	if err := os.RemoveAll(target); err != nil {
		logger.Warn("failed to clean up clone target",
			zap.String("target", target),
			zap.Error(err))
		return
	}
	logger.Info("cleaned up failed clone", zap.String("target", target))
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
