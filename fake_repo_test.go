package semtag

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5/plumbing"
)

// fakeRepo is an in-memory Repository.
type fakeRepo struct {
	tags    map[string]plumbing.Hash
	head    plumbing.Hash // zero => unborn HEAD
	listErr error
	headErr error
	created []string
	lookups int
}

func newFakeRepo(head plumbing.Hash, tags map[string]plumbing.Hash) *fakeRepo {
	if tags == nil {
		tags = make(map[string]plumbing.Hash)
	}

	return &fakeRepo{tags: tags, head: head}
}

func (f *fakeRepo) TagNames() ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}

	names := make([]string, 0, len(f.tags))
	for n := range f.tags {
		names = append(names, n)
	}
	sort.Strings(names)

	return names, nil
}

func (f *fakeRepo) Head() (plumbing.Hash, error) {
	if f.headErr != nil {
		return plumbing.ZeroHash, f.headErr
	}
	if f.head.IsZero() {
		return plumbing.ZeroHash, ErrHeadUnavailable
	}

	return f.head, nil
}

func (f *fakeRepo) TagTarget(name string) (plumbing.Hash, error) {
	f.lookups++
	h, ok := f.tags[name]
	if !ok {
		return plumbing.ZeroHash, fmt.Errorf("tag %s: %w", name, plumbing.ErrReferenceNotFound)
	}

	return h, nil
}

func (f *fakeRepo) CreateTag(name string, target plumbing.Hash) error {
	if _, ok := f.tags[name]; ok {
		return fmt.Errorf("%s: %w", name, ErrTagExists)
	}
	if target.IsZero() {
		return errors.New("zero target")
	}

	f.tags[name] = target
	f.created = append(f.created, name)

	return nil
}

// commit returns a deterministic fake commit hash.
func commit(n int) plumbing.Hash {
	return plumbing.NewHash(fmt.Sprintf("%040x", n))
}
