package clients

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GitClient clones and updates source repositories at fixed refs.
type GitClient interface {
	Sync(ctx context.Context, url, dir, ref string, submodules bool) error
	HeadCommit(ctx context.Context, dir string) (string, error)
}

// GitCLI implements GitClient over the git binary.
type GitCLI struct {
	Bin    string
	Runner Runner
}

// NewGitCLI builds a GitCLI.
func NewGitCLI(r Runner, binary string) *GitCLI {
	if binary == "" {
		binary = "git"
	}
	return &GitCLI{Bin: binary, Runner: r}
}

func (g *GitCLI) runGit(ctx context.Context, args ...string) (string, error) {
	out, _, err := g.Runner.Run(ctx, g.Bin, args...)
	if err != nil {
		return out, err
	}
	return strings.TrimSpace(out), nil
}

// Sync brings dir to ref: clone when absent, otherwise fetch and checkout.
// Any git failure is fatal; a half-synced clone is left for the user.
func (g *GitCLI) Sync(ctx context.Context, url, dir, ref string, submodules bool) error {
	if url == "" {
		return fmt.Errorf("repo url required")
	}
	if dir == "" {
		return fmt.Errorf("repo dir required")
	}

	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
		if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
			return fmt.Errorf("create src dir: %w", err)
		}
		if _, err := g.runGit(ctx, "clone", url, dir); err != nil {
			return fmt.Errorf("clone %s: %w", url, err)
		}
		// Checkout after the clone so the ref may be a branch, a tag, or a
		// commit hash; --branch would reject a hash pin.
		if ref != "" {
			if _, err := g.runGit(ctx, "-C", dir, "checkout", ref); err != nil {
				return fmt.Errorf("checkout %s in %s: %w", ref, dir, err)
			}
		}
	} else {
		if _, err := g.runGit(ctx, "-C", dir, "fetch", "origin"); err != nil {
			return fmt.Errorf("fetch %s: %w", dir, err)
		}
		if ref != "" {
			if _, err := g.runGit(ctx, "-C", dir, "checkout", ref); err != nil {
				return fmt.Errorf("checkout %s in %s: %w", ref, dir, err)
			}
		}
		if _, err := g.runGit(ctx, "-C", dir, "pull", "--ff-only"); err != nil {
			// Detached HEAD at a tag or pinned commit has nothing to pull.
			onBranch, berr := g.onBranch(ctx, dir)
			if berr != nil || onBranch {
				return fmt.Errorf("pull %s: %w", dir, err)
			}
		}
	}

	if submodules {
		if _, err := g.runGit(ctx, "-C", dir, "submodule", "update", "--init", "--recursive"); err != nil {
			return fmt.Errorf("submodules %s: %w", dir, err)
		}
	}
	return nil
}

// onBranch reports whether dir has a checked-out branch (as opposed to a
// detached HEAD).
func (g *GitCLI) onBranch(ctx context.Context, dir string) (bool, error) {
	out, err := g.runGit(ctx, "-C", dir, "branch", "--show-current")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// HeadCommit returns the current commit hash.
func (g *GitCLI) HeadCommit(ctx context.Context, dir string) (string, error) {
	out, err := g.runGit(ctx, "-C", dir, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
