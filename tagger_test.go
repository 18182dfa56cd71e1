package semtag

import (
	"bytes"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
)

func TestAllowIncrement(t *testing.T) {
	t.Parallel()

	cases := []struct {
		headTagged, force, want bool
	}{
		{false, false, true},
		{false, true, true},
		{true, false, false},
		{true, true, true},
	}

	for _, tc := range cases {
		if got := AllowIncrement(tc.headTagged, tc.force); got != tc.want {
			t.Fatalf("AllowIncrement(%v, %v) = %v; want %v", tc.headTagged, tc.force, got, tc.want)
		}
	}
}

func TestRun_MinorOverMixedTags(t *testing.T) {
	t.Parallel()

	head := commit(9)
	repo := newFakeRepo(head, map[string]plumbing.Hash{
		"v1.0.0":            commit(1),
		"v1.1.0":            commit(2),
		"release-candidate": head,
	})

	out, err := New(repo).Run(Bump{Kind: BumpMinor})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Resolution.Latest.String() != "1.1.0" || out.Resolution.HeadTagged {
		t.Fatalf("resolution = %+v; want latest 1.1.0, not tagged", out.Resolution)
	}
	if out.Action != ActionCreated || out.Tag != "v1.2.0" {
		t.Fatalf("outcome = %v %s; want created v1.2.0", out.Action, out.Tag)
	}
	if repo.tags["v1.2.0"] != head {
		t.Fatalf("v1.2.0 points at %s; want %s", repo.tags["v1.2.0"], head)
	}
}

func TestRun_AlreadyTagged(t *testing.T) {
	t.Parallel()

	head := commit(1)
	repo := newFakeRepo(head, map[string]plumbing.Hash{"v2.0.0": head})

	out, err := New(repo).Run(Bump{Kind: BumpPatch})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Action != ActionAlreadyTagged || out.Tag != "v2.0.0" {
		t.Fatalf("outcome = %v %s; want already-tagged v2.0.0", out.Action, out.Tag)
	}
	if len(repo.created) != 0 {
		t.Fatalf("created %v; want nothing", repo.created)
	}
}

func TestRun_ForceOverridesGate(t *testing.T) {
	t.Parallel()

	head := commit(1)
	repo := newFakeRepo(head, map[string]plumbing.Hash{"v2.0.0": head})

	out, err := New(repo, WithForce(true)).Run(Bump{Kind: BumpPatch})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Action != ActionCreated || out.Tag != "v2.0.1" {
		t.Fatalf("outcome = %v %s; want created v2.0.1", out.Action, out.Tag)
	}
	if repo.tags["v2.0.1"] != head {
		t.Fatalf("v2.0.1 not created at HEAD")
	}
}

func TestRun_Idempotent(t *testing.T) {
	t.Parallel()

	head := commit(3)
	repo := newFakeRepo(head, map[string]plumbing.Hash{"v0.1.0": commit(1)})
	tg := New(repo)

	first, err := tg.Run(Bump{Kind: BumpMinor})
	if err != nil || first.Action != ActionCreated || first.Tag != "v0.2.0" {
		t.Fatalf("first run = %v %s, %v; want created v0.2.0", first.Action, first.Tag, err)
	}

	second, err := tg.Run(Bump{Kind: BumpMinor})
	if err != nil {
		t.Fatalf("second run error: %v", err)
	}
	if second.Action != ActionAlreadyTagged || second.Tag != "v0.2.0" {
		t.Fatalf("second run = %v %s; want already-tagged v0.2.0", second.Action, second.Tag)
	}
	if !reflect.DeepEqual(repo.created, []string{"v0.2.0"}) {
		t.Fatalf("created %v; want exactly [v0.2.0]", repo.created)
	}
}

func TestRun_ReportOnly(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		head plumbing.Hash
		tags map[string]plumbing.Hash
		want string // "" => no tag
	}{
		{"empty repository", plumbing.ZeroHash, nil, ""},
		{"only junk", commit(1), map[string]plumbing.Hash{"nightly": commit(1)}, ""},
		{"latest", commit(1), map[string]plumbing.Hash{"v1.0.0": commit(1), "v1.0.1-rc.1": commit(2)}, "v1.0.1-rc.1"},
		{"real v0.0.0 is not none", commit(1), map[string]plumbing.Hash{"v0.0.0": commit(1)}, "v0.0.0"},
	}

	for _, tc := range cases {
		repo := newFakeRepo(tc.head, tc.tags)
		out, err := New(repo).Run(Bump{})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}

		if out.Action != ActionReport || out.Tag != tc.want {
			t.Fatalf("%s: outcome = %v %q; want report %q", tc.name, out.Action, out.Tag, tc.want)
		}
		if (out.Version == nil) != (tc.want == "") {
			t.Fatalf("%s: Version = %v", tc.name, out.Version)
		}
		if len(repo.created) != 0 {
			t.Fatalf("%s: created %v", tc.name, repo.created)
		}
	}
}

func TestRun_EmptyRepositoryBumpNeedsHead(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo(plumbing.ZeroHash, nil)

	_, err := New(repo).Run(Bump{Kind: BumpPatch})
	if !errors.Is(err, ErrHeadUnavailable) {
		t.Fatalf("err = %v; want ErrHeadUnavailable", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("created %v", repo.created)
	}
}

func TestRun_FirstTagFromZero(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo(commit(1), nil)

	out, err := New(repo).Run(Bump{Kind: BumpPatch})
	if err != nil || out.Tag != "v0.0.1" {
		t.Fatalf("outcome = %s, %v; want v0.0.1", out.Tag, err)
	}
}

func TestRun_DryRun(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo(commit(2), map[string]plumbing.Hash{"v1.4.2": commit(1)})

	out, err := New(repo, WithDryRun(true)).Run(Bump{Kind: BumpMajor})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Action != ActionPlanned || out.Tag != "v2.0.0" {
		t.Fatalf("outcome = %v %s; want planned v2.0.0", out.Action, out.Tag)
	}
	if len(repo.created) != 0 {
		t.Fatalf("dry run created %v", repo.created)
	}
}

func TestRun_InvalidLabelWritesNothing(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo(commit(2), map[string]plumbing.Hash{"v1.0.0": commit(1)})

	_, err := New(repo).Run(Bump{Kind: BumpPre, Label: "rc_1"})
	if !errors.Is(err, ErrInvalidIdentifier) {
		t.Fatalf("err = %v; want ErrInvalidIdentifier", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("created %v", repo.created)
	}
}

func TestRun_TagExistsFromWriter(t *testing.T) {
	t.Parallel()

	// a pre-release label on the latest release can collide with an older tag
	repo := newFakeRepo(commit(3), map[string]plumbing.Hash{
		"v1.0.0":    commit(1),
		"v1.0.0-rc": commit(2),
	})

	_, err := New(repo, WithForce(true)).Run(Bump{Kind: BumpPre, Label: "rc"})
	if !errors.Is(err, ErrTagExists) {
		t.Fatalf("err = %v; want ErrTagExists", err)
	}
}

func TestRun_LogsWithInjectedLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	repo := newFakeRepo(commit(2), map[string]plumbing.Hash{"v1.0.0": commit(1), "junk": commit(1)})

	if _, err := New(repo, WithLogger(log)).Run(Bump{Kind: BumpPatch}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"skip non-semver tag", "tag=junk", "tag created", "tag=v1.0.1"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("log missing %q:\n%s", want, buf.String())
		}
	}
}
