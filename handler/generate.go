package handler

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mortem-dev/mortem/domain/entity"
	"github.com/mortem-dev/mortem/domain/repository"
	"github.com/mortem-dev/mortem/presentation/postmortem"
)

// GenerateOptions carries the root command's flag values.
type GenerateOptions struct {
	Incident    string
	Date        string
	Duration    string
	Impact      string
	RootCause   string
	Timeline    string
	Resolution  string
	Output      string
	Interactive bool
	Export      bool
	Announce    bool
	AI          bool
}

func (o GenerateOptions) hasRequiredFlags() bool {
	return o.Incident != "" && o.Date != "" && o.Duration != "" && o.Impact != "" && o.RootCause != ""
}

// Generator drives the command-line flows. in and out are injectable so
// tests can script the prompts.
type Generator struct {
	repo *repository.RepositoryFacade
	now  func() time.Time
	in   io.Reader
	out  io.Writer
}

func NewGenerator(repo *repository.RepositoryFacade, now func() time.Time, in io.Reader, out io.Writer) *Generator {
	if now == nil {
		now = timeNow
	}
	return &Generator{
		repo: repo,
		now:  now,
		in:   in,
		out:  out,
	}
}

// Run picks the mode: prompted collection when asked for or when any
// required flag is absent, flag mode otherwise. Prompted mode never reuses
// partially supplied flags.
func (g *Generator) Run(ctx context.Context, opts GenerateOptions) error {
	if opts.Interactive || !opts.hasRequiredFlags() {
		return g.runInteractive(ctx, opts)
	}
	return g.runFlags(ctx, opts)
}

func (g *Generator) runFlags(ctx context.Context, opts GenerateOptions) error {
	// Flag values for timeline and resolution are trusted as
	// pre-formatted: file contents or literal text go to the renderer
	// verbatim.
	timeline, err := readFileOrLiteral(opts.Timeline)
	if err != nil {
		return err
	}
	resolution, err := readFileOrLiteral(opts.Resolution)
	if err != nil {
		return err
	}

	req := entity.PostMortemRequest{
		IncidentName: opts.Incident,
		IncidentDate: opts.Date,
		Duration:     opts.Duration,
		Impact:       opts.Impact,
		RootCause:    opts.RootCause,
		Timeline:     timeline,
		Resolution:   resolution,
	}
	rendered := postmortem.Render(documentFrom(req), g.now())

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(rendered), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", opts.Output, err)
		}
		fmt.Fprintf(g.out, "✓ Post-mortem generated: %s\n", opts.Output)
	} else {
		fmt.Fprintln(g.out, rendered)
	}

	return g.deliver(ctx, opts, req, rendered)
}

// readFileOrLiteral resolves a flag value that may name a file: an existing
// path is replaced by its contents, anything else is used as-is.
func readFileOrLiteral(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	if _, err := os.Stat(value); err != nil {
		return value, nil
	}
	b, err := os.ReadFile(value)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", value, err)
	}
	return string(b), nil
}

func (g *Generator) deliver(ctx context.Context, opts GenerateOptions, req entity.PostMortemRequest, rendered string) error {
	if opts.Export {
		if g.repo == nil || g.repo.Exporter == nil {
			return fmt.Errorf("confluence export requested but confluence is not configured")
		}
		url, err := g.repo.Exporter.ExportPostMortem(ctx, req.IncidentName, string(postmortem.HTML(rendered)))
		if err != nil {
			return fmt.Errorf("failed to export post-mortem: %w", err)
		}
		fmt.Fprintf(g.out, "✓ Exported to Confluence: %s\n", url)
	}

	if opts.Announce {
		if g.repo == nil || g.repo.Announcer == nil {
			return fmt.Errorf("slack announce requested but slack is not configured")
		}
		if err := g.repo.Announcer.AnnouncePostMortem(ctx, req.Filename(), req.IncidentName, rendered); err != nil {
			return fmt.Errorf("failed to announce post-mortem: %w", err)
		}
		fmt.Fprintf(g.out, "✓ Announced to Slack: #%s\n", g.repo.Config.Slack.Channel)
	}

	return nil
}
