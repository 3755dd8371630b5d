// Package vcs implements the domain.VCSClient capability on top of go-git.
package vcs

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	gitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/FyreX-opensource-design/gitpm/domain"
)

// GitClient talks to git remotes and local checkouts through go-git.
type GitClient struct{}

var _ domain.VCSClient = (*GitClient)(nil)

// NewGitClient creates a go-git backed VCS client.
func NewGitClient() *GitClient {
	return &GitClient{}
}

// Clone checks out url into destPath and returns the head commit hash.
func (c *GitClient) Clone(ctx context.Context, url, branch, destPath string) (string, error) {
	opts := &git.CloneOptions{
		URL:      url,
		Progress: os.Stderr,
	}
	if branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(branch)
		opts.SingleBranch = true
	}

	repo, err := git.PlainCloneContext(ctx, destPath, false, opts)
	if err != nil {
		return "", &domain.VCSError{Op: "clone", URL: url, Err: err}
	}

	head, err := repo.Head()
	if err != nil {
		return "", &domain.VCSError{Op: "clone", URL: url, Err: err}
	}
	return head.Hash().String(), nil
}

// CurrentCommit returns the head commit hash of a local checkout.
func (c *GitClient) CurrentCommit(path string) (string, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return "", &domain.VCSError{Op: "head", URL: path, Err: err}
	}
	head, err := repo.Head()
	if err != nil {
		return "", &domain.VCSError{Op: "head", URL: path, Err: err}
	}
	return head.Hash().String(), nil
}

// RemoteHeadCommit lists the remote's refs (the ls-remote equivalent) and
// returns the head hash of the requested branch, or of HEAD when branch is
// empty.
func (c *GitClient) RemoteHeadCommit(ctx context.Context, url, branch string) (string, error) {
	remote := git.NewRemote(memory.NewStorage(), &gitcfg.RemoteConfig{
		Name: "origin",
		URLs: []string{url},
	})

	refs, err := remote.ListContext(ctx, &git.ListOptions{})
	if err != nil {
		return "", &domain.VCSError{Op: "ls-remote", URL: url, Err: err}
	}

	wanted := plumbing.HEAD
	if branch != "" {
		wanted = plumbing.NewBranchReferenceName(branch)
	}

	byName := make(map[plumbing.ReferenceName]*plumbing.Reference, len(refs))
	for _, ref := range refs {
		byName[ref.Name()] = ref
	}

	ref, ok := byName[wanted]
	if !ok {
		return "", &domain.VCSError{
			Op: "ls-remote", URL: url,
			Err: fmt.Errorf("reference %q not found on remote", wanted),
		}
	}

	// HEAD may come back symbolic; follow it to the branch it points at.
	if ref.Type() == plumbing.SymbolicReference {
		target, found := byName[ref.Target()]
		if !found {
			return "", &domain.VCSError{
				Op: "ls-remote", URL: url,
				Err: fmt.Errorf("unresolvable symbolic reference %q", ref.Name()),
			}
		}
		ref = target
	}
	return ref.Hash().String(), nil
}

// Pull brings a local checkout up to the remote state and returns the new
// head commit hash. Force is set so stray local modifications in an
// installed package are discarded rather than blocking the update.
func (c *GitClient) Pull(ctx context.Context, path string) (string, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return "", &domain.VCSError{Op: "pull", URL: path, Err: err}
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", &domain.VCSError{Op: "pull", URL: path, Err: err}
	}

	pullErr := worktree.PullContext(ctx, &git.PullOptions{
		RemoteName: "origin",
		Force:      true,
		Progress:   os.Stderr,
	})
	if pullErr != nil && !errors.Is(pullErr, git.NoErrAlreadyUpToDate) {
		return "", &domain.VCSError{Op: "pull", URL: path, Err: pullErr}
	}

	head, err := repo.Head()
	if err != nil {
		return "", &domain.VCSError{Op: "pull", URL: path, Err: err}
	}
	return head.Hash().String(), nil
}
