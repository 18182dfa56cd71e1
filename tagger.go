package semtag

import (
	"errors"
	"io"
	"log/slog"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/woozymasta/semver"
)

// Repository is everything a Tagger needs from version control.
type Repository interface {
	Refs

	// CreateTag writes a lightweight tag name -> target.
	// It must fail with ErrTagExists instead of overwriting.
	CreateTag(name string, target plumbing.Hash) error
}

// Action describes what a run did.
type Action uint8

const (
	// ActionReport means no bump was requested; the latest version was reported.
	ActionReport Action = iota
	// ActionAlreadyTagged means HEAD carries a SemVer tag and force was not set.
	ActionAlreadyTagged
	// ActionPlanned means the next tag was computed but not written (dry run).
	ActionPlanned
	// ActionCreated means the next tag was written at HEAD.
	ActionCreated
)

// String returns a stable textual representation for Action.
func (a Action) String() string {
	switch a {
	case ActionAlreadyTagged:
		return "already-tagged"
	case ActionPlanned:
		return "planned"
	case ActionCreated:
		return "created"
	default:
		return "report"
	}
}

// Outcome is the result of Tagger.Run.
type Outcome struct {
	Action Action

	// Version is the latest version for ActionReport / ActionAlreadyTagged
	// and the next version otherwise. Nil only for ActionReport in a
	// repository without SemVer tags.
	Version *semver.Semver

	// Tag is TagName(Version), empty when Version is nil.
	Tag string

	Resolution Resolution
}

// AllowIncrement is the increment gate: a HEAD that already carries a
// SemVer tag is bumped only when forced.
func AllowIncrement(headTagged, force bool) bool {
	return force || !headTagged
}

// Tagger runs resolve -> gate -> bump -> write against one repository.
type Tagger struct {
	repo   Repository
	log    *slog.Logger
	force  bool
	dryRun bool
}

// Option configures a Tagger.
type Option func(*Tagger)

// WithLogger sets the logger; by default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tagger) {
		if l != nil {
			t.log = l
		}
	}
}

// WithForce bypasses the increment gate.
func WithForce(force bool) Option {
	return func(t *Tagger) { t.force = force }
}

// WithDryRun computes the next tag without writing it.
func WithDryRun(dryRun bool) Option {
	return func(t *Tagger) { t.dryRun = dryRun }
}

// New returns a Tagger for repo.
func New(repo Repository, opts ...Option) *Tagger {
	t := &Tagger{
		repo: repo,
		log:  discardLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Resolve scans the repository tags.
func (t *Tagger) Resolve() (Resolution, error) {
	return resolve(t.repo, t.log)
}

// Run performs one invocation. At most one tag is written.
func (t *Tagger) Run(b Bump) (Outcome, error) {
	res, err := t.Resolve()
	if err != nil {
		return Outcome{}, err
	}

	t.log.Debug("resolved tags",
		"latest", res.LatestTag,
		"head_tagged", res.HeadTagged,
		"head_tags", res.HeadTags,
	)

	if b.Kind == BumpNone {
		out := Outcome{Action: ActionReport, Resolution: res, Version: res.Latest}
		if res.Latest != nil {
			out.Tag = TagName(res.Latest)
		}

		return out, nil
	}

	if !AllowIncrement(res.HeadTagged, t.force) {
		t.log.Info("HEAD already tagged, not incrementing", "tags", res.HeadTags)
		v := res.Version()

		return Outcome{Action: ActionAlreadyTagged, Resolution: res, Version: v, Tag: TagName(v)}, nil
	}

	next, err := Next(res.Version(), b)
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{Action: ActionPlanned, Resolution: res, Version: next, Tag: TagName(next)}

	head, err := t.repo.Head()
	if err != nil {
		if errors.Is(err, ErrHeadUnavailable) {
			return Outcome{}, wrapErrorf(err, "cannot tag %s", out.Tag)
		}

		return Outcome{}, wrapError(err, "resolve HEAD")
	}

	if t.dryRun {
		t.log.Info("dry run, tag not written", "tag", out.Tag, "commit", head.String())
		return out, nil
	}

	if err := t.repo.CreateTag(out.Tag, head); err != nil {
		return Outcome{}, wrapErrorf(err, "create tag %s", out.Tag)
	}

	t.log.Info("tag created", "tag", out.Tag, "commit", head.String(), "bump", b.String(), "forced", t.force && res.HeadTagged)
	out.Action = ActionCreated

	return out, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
