package semtag

import (
	"regexp"
	"strings"

	msemver "github.com/Masterminds/semver/v3"
)

// ListOptions configures Select.
type ListOptions struct {
	// Include keeps only raw tag names that match.
	Include *regexp.Regexp

	// Exclude drops raw tag names that match.
	Exclude *regexp.Regexp

	// Constraint keeps only versions inside a range such as ">=1.2, <2".
	// Pre-releases match only when the constraint itself names one.
	Constraint *msemver.Constraints

	// Depth controls aggregation (patch/minor/major/latest).
	Depth Depth

	// Sort defines final output ordering (none/asc/desc).
	Sort SortMode

	// VPrefix controls whether tags must, may, or must not start with a leading 'v'.
	VPrefix VPrefix

	// Limit caps the output; <=0 is unlimited.
	Limit int

	// Deduplicate merges aliases of the same version ("1.2.3" vs "v1.2.3",
	// build metadata ignored). The alias kept is the one the resolver would pick.
	Deduplicate bool

	// OutputCanonical returns vMAJOR.MINOR.PATCH[-PRERELEASE] (build stripped)
	// instead of the original tag name.
	OutputCanonical bool
}

// DefaultListOptions lists every SemVer tag once, newest first.
func DefaultListOptions() ListOptions {
	return ListOptions{
		Depth:       DepthPatch,
		Sort:        SortDesc,
		Deduplicate: true,
	}
}

// ParseConstraint compiles a version range for ListOptions.Constraint.
// An empty string means no constraint.
func ParseConstraint(s string) (*msemver.Constraints, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	c, err := msemver.NewConstraint(s)
	if err != nil {
		return nil, wrapErrorf(err, "constraint %q", s)
	}

	return c, nil
}

// Depth controls aggregation granularity for listed tags.
type Depth int

const (
	// DepthPatch keeps all distinct X.Y.Z* entries (no aggregation).
	DepthPatch Depth = iota
	// DepthMinor keeps the latest per (major, minor).
	DepthMinor
	// DepthMajor keeps the latest per major.
	DepthMajor
	// DepthLatest keeps a single latest tag overall.
	DepthLatest
)

// String returns a stable textual representation for Depth.
func (d Depth) String() string {
	switch d {
	case DepthLatest:
		return "latest"
	case DepthMajor:
		return "major"
	case DepthMinor:
		return "minor"
	default:
		return "patch"
	}
}

// ParseDepth is the inverse of Depth.String; anything else is DepthPatch.
func ParseDepth(s string) Depth {
	switch toTok(s) {
	case "latest":
		return DepthLatest
	case "major":
		return DepthMajor
	case "minor":
		return DepthMinor
	default:
		return DepthPatch
	}
}

// SortMode controls the final output ordering.
type SortMode uint8

const (
	// SortNone preserves the input order.
	SortNone SortMode = iota
	// SortAsc sorts ascending by SemVer precedence.
	SortAsc
	// SortDesc sorts descending by SemVer precedence.
	SortDesc
)

// String returns a stable textual representation for SortMode.
func (m SortMode) String() string {
	switch m {
	case SortAsc:
		return "asc"
	case SortDesc:
		return "desc"
	default:
		return "none"
	}
}

// ParseSort is the inverse of SortMode.String; anything else is SortNone.
func ParseSort(s string) SortMode {
	switch toTok(s) {
	case "asc":
		return SortAsc
	case "desc":
		return SortDesc
	default:
		return SortNone
	}
}

// VPrefix controls acceptance of a leading 'v' on tag names.
type VPrefix uint8

const (
	// PrefixAny accepts "1.2.3" and "v1.2.3".
	PrefixAny VPrefix = iota

	// PrefixV requires a leading 'v'.
	PrefixV

	// PrefixNone forbids a leading 'v'.
	PrefixNone
)

// String returns a stable textual representation for VPrefix.
func (m VPrefix) String() string {
	switch m {
	case PrefixV:
		return "v"
	case PrefixNone:
		return "none"
	default:
		return "any"
	}
}

// ParseVPrefix is the inverse of VPrefix.String; anything else is PrefixAny.
func ParseVPrefix(s string) VPrefix {
	switch toTok(s) {
	case "v":
		return PrefixV
	case "none":
		return PrefixNone
	default:
		return PrefixAny
	}
}
