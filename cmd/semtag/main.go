/*
Package main is the semtag cli tool: it prints the latest SemVer tag of a
git repository and creates the tag for the next version.
*/
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/jessevdk/go-flags"

	"github.com/woozymasta/semtag"
	"github.com/woozymasta/semtag/internal/gitrepo"
)

type Options struct {
	// betteralign:ignore

	// Bump selectors, at most one
	OptionsBump OptionsBump `group:"Bump (mutually exclusive)"`
	// Gate and write behavior
	OptionsBehavior OptionsBehavior `group:"Behavior"`
	// Output format
	OptionsOutput OptionsOutput `group:"Output"`
	// Tag listing
	OptionsList OptionsList `group:"List"`

	Args struct {
		Repo string `positional-arg-name:"REPO" description:"Path inside the git repository (default: .)"`
	} `positional-args:"yes"`
}

type OptionsBump struct {
	Patch bool    `short:"p" long:"patch" description:"A bugfix release (3.2.1 -> 3.2.2)"`
	Minor bool    `short:"m" long:"minor" description:"A feature release (3.2.1 -> 3.3.0)"`
	Major bool    `short:"M" long:"major" description:"An incompatible release (3.2.1 -> 4.0.0)"`
	Pre   *string `long:"pre"   value-name:"LABEL" description:"Set pre-release label (3.2.1 -> 3.2.1-LABEL)"`
	Build *string `long:"build" value-name:"LABEL" description:"Set build metadata (3.2.1 -> 3.2.1+LABEL)"`

	Fix      bool `long:"fix"      hidden:"yes" description:"Alias for --patch"`
	Feature  bool `long:"feature"  hidden:"yes" description:"Alias for --minor"`
	Breaking bool `long:"breaking" hidden:"yes" description:"Alias for --major"`
}

type OptionsBehavior struct {
	Force  bool `short:"f" long:"force"   env:"SEMTAG_FORCE"   description:"Bump even if HEAD already carries a SemVer tag"`
	DryRun bool `short:"n" long:"dry-run" env:"SEMTAG_DRY_RUN" description:"Print the next tag without creating it"`
}

type OptionsOutput struct {
	Quiet   bool `short:"q" long:"quiet"   env:"SEMTAG_QUIET"   description:"Print only v<version>"`
	Verbose bool `short:"v" long:"verbose" env:"SEMTAG_VERBOSE" description:"Log resolution details to stderr"`
}

type OptionsList struct {
	List       bool    `short:"l" long:"list"       description:"List SemVer tags instead of bumping"`
	Depth      string  `short:"D" long:"depth"      env:"SEMTAG_DEPTH" description:"Aggregation depth" choice:"patch" choice:"minor" choice:"major" choice:"latest" default:"patch"`
	Sort       string  `short:"S" long:"sort"       env:"SEMTAG_SORT"  description:"Sort listed tags" choice:"none" choice:"asc" choice:"desc" default:"desc"`
	Limit      int     `short:"N" long:"limit"      description:"Max number of listed tags (<=0 = unlimited)" default:"0"`
	VPrefix    string  `short:"V" long:"v-prefix"   description:"Policy for leading 'v' in listed tags" choice:"any" choice:"v" choice:"none" default:"any"`
	Include    Pattern `short:"i" long:"include"    description:"Regexp to keep tags"`
	Exclude    Pattern `short:"e" long:"exclude"    description:"Regexp to drop tags"`
	Constraint string  `short:"C" long:"constraint" env:"SEMTAG_CONSTRAINT" description:"Version range to keep, e.g. '>=1.2, <2' (pre-releases need a pre-release bound)"`
	Canonical  bool    `short:"c" long:"canonical"  description:"Print canonical vMAJOR.MINOR.PATCH[-PRERELEASE]"`
}

// Pattern is a regexp flag value. Values may start with '-'.
type Pattern struct {
	re *regexp.Regexp
}

// UnmarshalFlag implements flags.Unmarshaler.
func (p *Pattern) UnmarshalFlag(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		p.re = nil
		return nil
	}

	re, err := regexp.Compile(value)
	if err != nil {
		return err
	}

	p.re = re

	return nil
}

// MarshalFlag implements flags.Marshaler.
func (p Pattern) MarshalFlag() (string, error) {
	if p.re == nil {
		return "", nil
	}

	return p.re.String(), nil
}

// IsValidValue implements flags.ValueValidator so that "-rc" is taken as
// the value rather than as the next option.
func (p *Pattern) IsValidValue(string) error {
	return nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opt Options
	parser := flags.NewParser(&opt, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "semtag"
	parser.LongDescription = `A tool to increment SemVer-compatible git tags.
Without a bump option it prints the latest version. With one it creates
the lightweight tag v<next> at HEAD, unless HEAD is already tagged.`

	if _, err := parser.ParseArgs(args); err != nil {
		var flagErr *flags.Error
		if errors.As(err, &flagErr) && flagErr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, err)
			return 0
		}

		fmt.Fprintln(stderr, err)
		return 1
	}

	log := newLogger(stderr, opt.OptionsOutput.Verbose)

	if err := execute(opt, stdout, log); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	return 0
}

func execute(opt Options, stdout io.Writer, log *slog.Logger) error {
	b, err := semtag.SelectBump(
		opt.OptionsBump.Patch || opt.OptionsBump.Fix,
		opt.OptionsBump.Minor || opt.OptionsBump.Feature,
		opt.OptionsBump.Major || opt.OptionsBump.Breaking,
		opt.OptionsBump.Pre,
		opt.OptionsBump.Build,
	)
	if err != nil {
		return err
	}

	if opt.OptionsList.List && b.Kind != semtag.BumpNone {
		return fmt.Errorf("%w: --list cannot be combined with a bump", semtag.ErrConflictingOptions)
	}

	repo, err := gitrepo.Open(opt.Args.Repo)
	if err != nil {
		return err
	}

	if opt.OptionsList.List {
		return list(repo, opt.OptionsList, stdout)
	}

	t := semtag.New(repo,
		semtag.WithLogger(log),
		semtag.WithForce(opt.OptionsBehavior.Force),
		semtag.WithDryRun(opt.OptionsBehavior.DryRun),
	)

	out, err := t.Run(b)
	if err != nil {
		return err
	}

	fmt.Fprint(stdout, render(out, opt.OptionsOutput.Quiet))

	return nil
}

// render formats an outcome as the lines printed on stdout.
func render(out semtag.Outcome, quiet bool) string {
	if out.Tag == "" {
		if quiet {
			return ""
		}

		return "The repository does not have a semver tag\n"
	}

	if quiet {
		return out.Tag + "\n"
	}

	switch out.Action {
	case semtag.ActionAlreadyTagged:
		return "HEAD is already tagged: " + out.Tag + "\n"
	case semtag.ActionPlanned:
		return "next tag: " + out.Tag + "\n"
	case semtag.ActionCreated:
		return "new tag: " + out.Tag + "\n"
	default:
		return "latest version: " + out.Tag + "\n"
	}
}

func list(repo *gitrepo.Repo, opt OptionsList, stdout io.Writer) error {
	names, err := repo.TagNames()
	if err != nil {
		return err
	}

	lOpt := semtag.DefaultListOptions()
	lOpt.Depth = semtag.ParseDepth(opt.Depth)
	lOpt.Sort = semtag.ParseSort(opt.Sort)
	lOpt.VPrefix = semtag.ParseVPrefix(opt.VPrefix)
	lOpt.Limit = opt.Limit
	lOpt.OutputCanonical = opt.Canonical
	lOpt.Include = opt.Include.re
	lOpt.Exclude = opt.Exclude.re

	if lOpt.Constraint, err = semtag.ParseConstraint(opt.Constraint); err != nil {
		return err
	}

	for _, t := range semtag.Select(names, lOpt) {
		fmt.Fprintln(stdout, t)
	}

	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
