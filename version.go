package semtag

import (
	"strings"

	"github.com/woozymasta/semver"
)

// TagPrefix is prepended to every version when it is written as a tag.
const TagPrefix = "v"

// zeroVersion is the base for bumps in a repository without semver tags.
var zeroVersion, _ = semver.Parse("0.0.0")

// ParseTag parses a tag name as a full SemVer after stripping at most one
// leading "v". It reports false for anything else ("release-candidate",
// "1.2", "vv1.2.3", "V1.2.3", "v01.2.3" ...).
//
// The returned version carries no prefix, so String renders X.Y.Z[-pre][+build].
func ParseTag(name string) (*semver.Semver, bool) {
	raw := strings.TrimPrefix(name, TagPrefix)
	if raw == "" || raw[0] == 'v' || raw[0] == 'V' {
		return nil, false
	}

	v, ok := semver.Parse(raw)
	if !ok || !v.IsValid() || !v.HasPatch() {
		return nil, false
	}

	return &v, true
}

// TagName renders v as a tag name: v<major>.<minor>.<patch>[-<pre>][+<build>].
func TagName(v *semver.Semver) string {
	return TagPrefix + v.SemVer()
}

// compareTags orders two parsed tags totally: SemVer precedence first,
// then the full version string (build metadata included), then the tag name.
func compareTags(a *semver.Semver, aTag string, b *semver.Semver, bTag string) int {
	if cmp := a.Compare(*b); cmp != 0 {
		return cmp
	}

	if as, bs := a.SemVer(), b.SemVer(); as != bs {
		return strings.Compare(as, bs)
	}

	return strings.Compare(aTag, bTag)
}

// newer reports whether candidate should replace current as the maximum.
// The winner does not depend on the order tags are visited in.
func newer(candidate *semver.Semver, candidateTag string, current *semver.Semver, currentTag string) bool {
	if current == nil {
		return true
	}

	return compareTags(candidate, candidateTag, current, currentTag) > 0
}
