package semtag

import (
	"strings"

	"github.com/woozymasta/semver"
)

// BumpKind selects which part of the version to advance.
type BumpKind uint8

const (
	// BumpNone requests no change; the current version is only reported.
	BumpNone BumpKind = iota
	// BumpPatch is a bugfix release (3.2.1 -> 3.2.2).
	BumpPatch
	// BumpMinor is a feature release (3.2.1 -> 3.3.0).
	BumpMinor
	// BumpMajor is an incompatible release (3.2.1 -> 4.0.0).
	BumpMajor
	// BumpPre sets the pre-release label (3.2.1 -> 3.2.1-rc.1).
	BumpPre
	// BumpBuild sets the build metadata (3.2.1 -> 3.2.1+exp.sha.5114f85).
	BumpBuild
)

// String returns a stable textual representation for BumpKind.
func (k BumpKind) String() string {
	switch k {
	case BumpPatch:
		return "patch"
	case BumpMinor:
		return "minor"
	case BumpMajor:
		return "major"
	case BumpPre:
		return "pre"
	case BumpBuild:
		return "build"
	default:
		return "none"
	}
}

// Bump is a single requested increment. Label is used by BumpPre and BumpBuild only.
type Bump struct {
	Kind  BumpKind
	Label string
}

func (b Bump) String() string {
	if b.Kind == BumpPre || b.Kind == BumpBuild {
		return b.Kind.String() + "(" + b.Label + ")"
	}

	return b.Kind.String()
}

// SelectBump collapses independently set bump selectors into one Bump.
// Setting more than one is ErrConflictingOptions; setting none is BumpNone.
func SelectBump(patch, minor, major bool, pre, build *string) (Bump, error) {
	var (
		selected []string
		b        Bump
	)

	if patch {
		selected = append(selected, "patch")
		b = Bump{Kind: BumpPatch}
	}
	if minor {
		selected = append(selected, "minor")
		b = Bump{Kind: BumpMinor}
	}
	if major {
		selected = append(selected, "major")
		b = Bump{Kind: BumpMajor}
	}
	if pre != nil {
		selected = append(selected, "pre")
		b = Bump{Kind: BumpPre, Label: *pre}
	}
	if build != nil {
		selected = append(selected, "build")
		b = Bump{Kind: BumpBuild, Label: *build}
	}

	if len(selected) > 1 {
		return Bump{}, wrapErrorf(ErrConflictingOptions, "only one of %s may be given", strings.Join(selected, ", "))
	}

	return b, nil
}

// Next computes the version that follows cur under b. cur is never modified.
// Numeric bumps clear both pre-release and build metadata; BumpPre keeps
// build metadata and BumpBuild keeps the pre-release.
func Next(cur *semver.Semver, b Bump) (*semver.Semver, error) {
	base := zeroVersion
	if cur != nil {
		base = *cur
	}

	var (
		next semver.Semver
		ok   bool
	)

	switch b.Kind {
	case BumpPatch:
		next, ok = base.BumpPatch()

	case BumpMinor:
		next, ok = base.BumpMinor()

	case BumpMajor:
		next, ok = base.BumpMajor()

	case BumpPre:
		if b.Label == "" {
			return nil, wrapError(ErrInvalidIdentifier, "empty pre-release label")
		}

		if next, ok = base.WithPre(b.Label); !ok {
			return nil, wrapErrorf(ErrInvalidIdentifier, "pre-release %q", b.Label)
		}

	case BumpBuild:
		if b.Label == "" {
			return nil, wrapError(ErrInvalidIdentifier, "empty build metadata")
		}

		if next, ok = base.WithBuild(b.Label); !ok {
			return nil, wrapErrorf(ErrInvalidIdentifier, "build metadata %q", b.Label)
		}

	default:
		return nil, ErrNoBump
	}

	if !ok {
		return nil, wrapErrorf(ErrInvalidIdentifier, "cannot bump %s", base.SemVer())
	}

	return &next, nil
}
