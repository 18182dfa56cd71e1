package semtag

import (
	"errors"
	"log/slog"
	"sort"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/woozymasta/semver"
)

// Refs is the read side of a repository as seen by the resolver.
type Refs interface {
	// TagNames returns the short names of all tags, in any order.
	TagNames() ([]string, error)

	// Head returns the commit HEAD points at, or ErrHeadUnavailable
	// when there is none (unborn branch, empty repository).
	Head() (plumbing.Hash, error)

	// TagTarget returns the commit refs/tags/<name> resolves to.
	TagTarget(name string) (plumbing.Hash, error)
}

// Resolution is the state of the tag namespace for one run.
type Resolution struct {
	// Latest is the greatest SemVer among all tags; nil when no tag parses.
	Latest *semver.Semver

	// LatestTag is the tag name Latest was parsed from.
	LatestTag string

	// HeadTagged is true when a SemVer tag points at HEAD.
	HeadTagged bool

	// HeadTags lists the SemVer tags pointing at HEAD, sorted.
	HeadTags []string
}

// Found reports whether any tag parsed as SemVer.
func (r Resolution) Found() bool {
	return r.Latest != nil
}

// Version returns Latest, or 0.0.0 when no SemVer tag exists.
func (r Resolution) Version() *semver.Semver {
	if r.Latest == nil {
		v := zeroVersion
		return &v
	}

	return r.Latest
}

// Resolve scans all tags in refs. A missing HEAD is not an error here:
// HeadTagged simply stays false.
func Resolve(refs Refs) (Resolution, error) {
	return resolve(refs, discardLogger())
}

func resolve(refs Refs, log *slog.Logger) (Resolution, error) {
	names, err := refs.TagNames()
	if err != nil {
		return Resolution{}, wrapError(err, "list tags")
	}

	head, err := refs.Head()
	switch {
	case err == nil:
	case errors.Is(err, ErrHeadUnavailable):
		log.Debug("HEAD unavailable, skipping tagged check", "error", err)
		head = plumbing.ZeroHash
	default:
		return Resolution{}, wrapError(err, "resolve HEAD")
	}

	return resolveTags(names, head, refs.TagTarget, log), nil
}

// ResolveTags is the pure core of Resolve. head may be plumbing.ZeroHash
// when HEAD is unknown; target is only called for tags that parse.
func ResolveTags(names []string, head plumbing.Hash, target func(name string) (plumbing.Hash, error)) Resolution {
	return resolveTags(names, head, target, discardLogger())
}

func resolveTags(names []string, head plumbing.Hash, target func(string) (plumbing.Hash, error), log *slog.Logger) Resolution {
	var res Resolution

	for _, name := range names {
		v, ok := ParseTag(name)
		if !ok {
			log.Debug("skip non-semver tag", "tag", name)
			continue
		}

		if newer(v, name, res.Latest, res.LatestTag) {
			res.Latest, res.LatestTag = v, name
		}

		if head.IsZero() || target == nil {
			continue
		}

		h, err := target(name)
		if err != nil {
			log.Debug("skip unresolvable tag", "tag", name, "error", err)
			continue
		}

		if h == head {
			res.HeadTagged = true
			res.HeadTags = append(res.HeadTags, name)
		}
	}

	sort.Strings(res.HeadTags)

	return res
}
