// Package git drives the git binary to keep shader source clones in sync.
// The pull flow mirrors a fetch + merge-analysis: fast-forward when
// possible, otherwise a real merge that may surface conflicts for manual
// resolution.
package git

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/cozysoft/reshader/pkg/errors"
	"github.com/cozysoft/reshader/pkg/logging"
)

// IsInstalled reports whether a git binary is available on PATH
func IsInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// run executes git with the given arguments inside dir ("" for none) and
// returns trimmed stdout. stderr is folded into the returned error.
func run(dir string, args ...string) (string, error) {
	if dir != "" {
		args = append([]string{"-C", dir}, args...)
	}
	cmd := exec.Command("git", args...)

	var stderr strings.Builder
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(string(out)), nil
}

// Clone clones url into dest, optionally at a specific branch
func Clone(url, dest, branch string) error {
	log := logging.GetLogger("git")
	log.Info().Str("url", url).Str("dest", dest).Msg("Cloning repository")

	args := []string{"clone"}
	if branch != "" {
		args = append(args, "--branch", branch)
	}
	args = append(args, url, dest)

	if _, err := run("", args...); err != nil {
		return errors.Wrapf(err, errors.ErrRepoSync, "failed to clone %s", url)
	}
	return nil
}

// Pull fetches the configured branch (or the current HEAD branch) from
// origin and brings the local branch up to date. Fast-forwards discard
// local modifications; non-trivial merges that conflict leave the working
// tree in its conflicted state and fail with a MergeConflict error.
func Pull(repoPath, branch string) error {
	log := logging.GetLogger("git")
	name := filepath.Base(repoPath)

	if _, err := os.Stat(repoPath); os.IsNotExist(err) {
		return errors.Newf(errors.ErrRepoNotFound, "could not find repository for %s", name).
			WithDetail("name", name)
	}

	refspec := branch
	if refspec == "" {
		head, err := run(repoPath, "symbolic-ref", "--short", "HEAD")
		if err != nil {
			return errors.Wrapf(err, errors.ErrRepoSync, "failed to resolve HEAD branch of %s", name)
		}
		refspec = head
	}

	log.Debug().Str("repo", name).Str("branch", refspec).Msg("Fetching from origin")
	if _, err := run(repoPath, "fetch", "origin", refspec); err != nil {
		return errors.Wrapf(err, errors.ErrRepoSync, "failed to fetch %s from origin", refspec)
	}

	if _, err := run(repoPath, "rev-parse", "--verify", "refs/heads/"+refspec); err != nil {
		return errors.Newf(errors.ErrBranchNotFound, "could not find branch %s for repository %s", refspec, name).
			WithDetail("branch", refspec).
			WithDetail("repository", name)
	}

	head, err := run(repoPath, "rev-parse", "HEAD")
	if err != nil {
		return errors.Wrapf(err, errors.ErrRepoSync, "failed to resolve HEAD of %s", name)
	}
	fetched, err := run(repoPath, "rev-parse", "FETCH_HEAD")
	if err != nil {
		return errors.Wrapf(err, errors.ErrRepoSync, "failed to resolve FETCH_HEAD of %s", name)
	}
	if head == fetched {
		log.Debug().Str("repo", name).Msg("Already up to date")
		return nil
	}

	// fetched commit already contained in HEAD: nothing to merge
	if _, err := run(repoPath, "merge-base", "--is-ancestor", fetched, head); err == nil {
		log.Debug().Str("repo", name).Msg("Already up to date")
		return nil
	}

	// fast-forward: move the branch ref and force-checkout, discarding
	// local modifications
	if _, err := run(repoPath, "merge-base", "--is-ancestor", head, fetched); err == nil {
		log.Info().Str("repo", name).Str("branch", refspec).Msg("Fast-forwarding")
		if _, err := run(repoPath, "update-ref", "refs/heads/"+refspec, fetched); err != nil {
			return errors.Wrapf(err, errors.ErrRepoSync, "failed to fast-forward %s", refspec)
		}
		if _, err := run(repoPath, "checkout", "--force", refspec); err != nil {
			return errors.Wrapf(err, errors.ErrRepoSync, "failed to check out %s", refspec)
		}
		return nil
	}

	log.Info().Str("repo", name).Str("branch", refspec).Msg("Merging")
	if _, err := run(repoPath, "merge", "--no-edit", fetched); err != nil {
		unmerged, lsErr := run(repoPath, "ls-files", "--unmerged")
		if lsErr == nil && unmerged != "" {
			// conflicted state is left for out-of-band manual resolution
			return errors.Newf(errors.ErrMergeConflict, "merge conflicts found for branch %s of repository %s", refspec, name).
				WithDetail("branch", refspec).
				WithDetail("repository", name)
		}
		return errors.Wrapf(err, errors.ErrRepoSync, "failed to merge %s into %s", refspec, name)
	}

	return nil
}
