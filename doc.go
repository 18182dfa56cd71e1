/*
Package semtag finds the latest SemVer tag of a git repository and creates
the tag for the next version.

Typical flow:

 1. Open a repository (see internal/gitrepo) or implement Repository.
 2. Resolve the tags: the greatest SemVer tag, and whether HEAD already carries one.
 3. Pass the Resolution through the increment gate and compute the next version.
 4. Write v<version> as a lightweight tag at HEAD.

Tagger.Run does all of it:

	t := semtag.New(repo, semtag.WithForce(false))
	out, err := t.Run(semtag.Bump{Kind: semtag.BumpMinor})
	if err != nil {
		return err
	}

	switch out.Action {
	case semtag.ActionCreated:
		fmt.Println("new tag:", out.Tag)
	case semtag.ActionAlreadyTagged:
		fmt.Println("HEAD is already tagged:", out.Tag)
	}

SemVer notes:
  - At most one leading "v" is stripped; the rest must be strict X.Y.Z[-pre][+build].
  - Tags that do not parse ("release-candidate", "1.2", "nightly") are ignored.
  - Pre-release versions sort below their release (1.0.0-beta < 1.0.0);
    build metadata never affects ordering.
  - A repository without SemVer tags bumps from 0.0.0, but reports "no tag"
    rather than 0.0.0, so a real v0.0.0 tag is never mistaken for "none".
  - Re-running on a tagged HEAD does not create a second tag unless forced.

Select lists and aggregates tag names (latest per major/minor, sorted,
canonical output) for inspection.
*/
package semtag
