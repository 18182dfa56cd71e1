package semtag

import (
	"sort"

	msemver "github.com/Masterminds/semver/v3"
	"github.com/woozymasta/semver"
)

// rec carries a raw tag, its input position and the parsed version.
type rec struct {
	raw string
	ver semver.Semver
	idx int
}

func (r rec) newer(cur rec) bool {
	return newer(&r.ver, r.raw, &cur.ver, cur.raw)
}

// Select filters, aggregates and sorts repository tag names:
//  1. cheap raw prefilter (VPrefix / Include / Exclude)
//  2. parse once, keep only tags ParseTag accepts
//  3. constraint -> deduplicate -> depth aggregation -> sort -> limit
//
// Non-SemVer tags are never returned. Among equal versions the tag the
// resolver would pick wins, so DepthLatest agrees with Resolve.
func Select(names []string, opt ListOptions) []string {
	rs := parseAll(preFilterRaw(names, opt))
	if opt.Constraint != nil {
		rs = constrain(rs, opt.Constraint)
	}
	if len(rs) == 0 {
		return nil
	}

	if opt.Deduplicate {
		rs = deduplicate(rs)
	}

	switch opt.Depth {
	case DepthMinor:
		rs = aggregate(rs, func(v semver.Semver) [2]int { return [2]int{v.Major, v.Minor} })
	case DepthMajor:
		rs = aggregate(rs, func(v semver.Semver) [2]int { return [2]int{v.Major, 0} })
	case DepthLatest:
		rs = aggregate(rs, func(semver.Semver) [2]int { return [2]int{} })
	}

	switch opt.Sort {
	case SortAsc:
		sortRecs(rs, true)
	case SortDesc:
		sortRecs(rs, false)
	default:
		sort.SliceStable(rs, func(i, j int) bool { return rs[i].idx < rs[j].idx })
	}

	out := make([]string, 0, len(rs))
	for _, r := range rs {
		if opt.OutputCanonical {
			out = append(out, r.ver.Canonical())
		} else {
			out = append(out, r.raw)
		}
	}

	return capStrings(out, opt.Limit)
}

// preFilterRaw applies VPrefix / Include / Exclude.
func preFilterRaw(in []string, opt ListOptions) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !acceptVPrefix(s, opt.VPrefix) {
			continue
		}

		if opt.Include != nil && !opt.Include.MatchString(s) {
			continue
		}

		if opt.Exclude != nil && opt.Exclude.MatchString(s) {
			continue
		}

		out = append(out, s)
	}

	return out
}

func acceptVPrefix(s string, mode VPrefix) bool {
	switch mode {
	case PrefixV:
		return hasLeadingV(s)
	case PrefixNone:
		return !hasLeadingV(s)
	default:
		return true
	}
}

func hasLeadingV(s string) bool {
	return len(s) > 0 && s[0] == 'v'
}

// parseAll keeps the tags the resolver would also accept.
// Shorthand X / X.Y is dropped.
func parseAll(in []string) []rec {
	rs := make([]rec, 0, len(in))
	for idx, s := range in {
		v, ok := ParseTag(s)
		if !ok {
			continue
		}

		rs = append(rs, rec{raw: s, ver: *v, idx: idx})
	}

	return rs
}

// constrain drops versions outside c.
func constrain(rs []rec, c *msemver.Constraints) []rec {
	keep := rs[:0]
	for _, r := range rs {
		mv, err := msemver.StrictNewVersion(r.ver.SemVer())
		if err != nil || !c.Check(mv) {
			continue
		}

		keep = append(keep, r)
	}

	return keep
}

// deduplicate by (X.Y.Z + prerelease), ignoring build.
// The slot of the first appearance is kept, filled with the newest alias.
func deduplicate(rs []rec) []rec {
	type key struct {
		maj, min, pat int
		pre           string
	}

	pos := make(map[key]int, len(rs))
	keep := rs[:0]
	for _, r := range rs {
		k := key{r.ver.Major, r.ver.Minor, r.ver.Patch, r.ver.Prerelease}
		if i, ok := pos[k]; ok {
			if r.newer(keep[i]) {
				keep[i] = r
			}
			continue
		}

		pos[k] = len(keep)
		keep = append(keep, r)
	}

	return keep
}

// aggregate keeps the greatest record per bucket.
func aggregate(rs []rec, bucket func(semver.Semver) [2]int) []rec {
	best := make(map[[2]int]rec, len(rs))
	for _, r := range rs {
		k := bucket(r.ver)
		if cur, ok := best[k]; !ok || r.newer(cur) {
			best[k] = r
		}
	}

	out := make([]rec, 0, len(best))
	for _, r := range best {
		out = append(out, r)
	}

	// map order is random; restore input order for SortNone
	sort.Slice(out, func(i, j int) bool { return out[i].idx < out[j].idx })

	return out
}

// sortRecs sorts by SemVer precedence, ties as in compareTags,
// then by input position.
func sortRecs(rs []rec, asc bool) {
	sort.SliceStable(rs, func(i, j int) bool {
		cmp := compareTags(&rs[i].ver, rs[i].raw, &rs[j].ver, rs[j].raw)
		if cmp == 0 {
			return rs[i].idx < rs[j].idx
		}
		if asc {
			return cmp < 0
		}

		return cmp > 0
	})
}
