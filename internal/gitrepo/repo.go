// Package gitrepo implements semtag.Repository on top of go-git.
// It works with on-disk and in-memory repositories alike.
package gitrepo

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/woozymasta/semtag"
)

// Repo is a semtag.Repository backed by a go-git repository.
type Repo struct {
	repo *git.Repository
}

var _ semtag.Repository = (*Repo)(nil)

// Open discovers the repository containing path, searching parent
// directories for the .git directory like git itself does.
func Open(path string) (*Repo, error) {
	if path == "" {
		path = "."
	}

	r, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%s: %w", path, semtag.ErrRepositoryNotFound)
		}

		return nil, fmt.Errorf("open repository %s: %w", path, err)
	}

	return New(r), nil
}

// New wraps an already opened repository.
func New(r *git.Repository) *Repo {
	return &Repo{repo: r}
}

// TagNames returns the short names of all tags, unsorted.
func (r *Repo) TagNames() ([]string, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	defer iter.Close()

	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}

	return names, nil
}

// Head returns the commit HEAD points at.
// An unborn branch yields semtag.ErrHeadUnavailable.
func (r *Repo) Head() (plumbing.Hash, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(plumbing.HEAD))
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) || errors.Is(err, plumbing.ErrObjectNotFound) {
			return plumbing.ZeroHash, fmt.Errorf("%w: %w", semtag.ErrHeadUnavailable, err)
		}

		return plumbing.ZeroHash, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	return *hash, nil
}

// TagTarget returns the commit refs/tags/<name> points at.
// Annotated tags are peeled to their commit.
func (r *Repo) TagTarget(name string) (plumbing.Hash, error) {
	ref, err := r.repo.Reference(plumbing.NewTagReferenceName(name), true)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to resolve tag %s: %w", name, err)
	}

	tag, err := r.repo.TagObject(ref.Hash())
	switch {
	case err == nil:
		commit, err := tag.Commit()
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("failed to peel tag %s: %w", name, err)
		}

		return commit.Hash, nil

	case errors.Is(err, plumbing.ErrObjectNotFound):
		// lightweight tag
		return ref.Hash(), nil

	default:
		return plumbing.ZeroHash, fmt.Errorf("failed to read tag %s: %w", name, err)
	}
}

// CreateTag writes a lightweight tag. It never overwrites an existing tag.
func (r *Repo) CreateTag(name string, target plumbing.Hash) error {
	if name == "" {
		return errors.New("tag name cannot be empty")
	}

	if target.IsZero() {
		return fmt.Errorf("tag %s: %w", name, semtag.ErrHeadUnavailable)
	}

	if _, err := r.repo.CreateTag(name, target, nil); err != nil {
		if errors.Is(err, git.ErrTagExists) {
			return fmt.Errorf("%s: %w", name, semtag.ErrTagExists)
		}

		return fmt.Errorf("failed to create tag %s: %w", name, err)
	}

	return nil
}
