package handler

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mortem-dev/mortem/domain/entity"
	"github.com/mortem-dev/mortem/presentation/postmortem"
)

const previewChars = 500

func (g *Generator) runInteractive(ctx context.Context, opts GenerateOptions) error {
	if opts.AI && (g.repo == nil || g.repo.AI == nil) {
		return fmt.Errorf("ai drafting requested but no OpenAI credentials are configured")
	}

	scanner := bufio.NewScanner(g.in)

	rule := strings.Repeat("=", 60)
	fmt.Fprintln(g.out, rule)
	fmt.Fprintln(g.out, "Incident Post-Mortem Generator")
	fmt.Fprintln(g.out, rule)
	fmt.Fprintln(g.out)

	name := strings.TrimSpace(g.prompt(scanner, "1. Incident Name/Title: "))
	if name == "" {
		return fmt.Errorf("incident name is required")
	}

	date := strings.TrimSpace(g.prompt(scanner, "2. Incident Date (YYYY-MM-DD): "))
	if date == "" {
		date = g.now().Format("2006-01-02")
		fmt.Fprintf(g.out, "   Using today's date: %s\n", date)
	}

	duration := strings.TrimSpace(g.prompt(scanner, "3. Duration (e.g., '2 hours', '30 minutes'): "))
	if duration == "" {
		duration = "Unknown"
	}

	fmt.Fprintln(g.out, "4. Impact Description:")
	impact := strings.TrimSpace(g.prompt(scanner, "   "))
	impactDefaulted := impact == ""
	if impactDefaulted {
		impact = "To be documented"
	}

	fmt.Fprintln(g.out, "5. Root Cause:")
	rootCause := strings.TrimSpace(g.prompt(scanner, "   "))
	rootCauseDefaulted := rootCause == ""
	if rootCauseDefaulted {
		rootCause = "Under investigation"
	}

	fmt.Fprintln(g.out)
	fmt.Fprintln(g.out, "Optional fields (press Enter to skip):")
	fmt.Fprintln(g.out, "Timeline (press Enter twice when done, or Enter to skip):")
	timeline := postmortem.BulletList(strings.Join(g.collectLines(scanner), "\n"))

	fmt.Fprintln(g.out)
	fmt.Fprintln(g.out, "Resolution steps (press Enter twice when done, or Enter to skip):")
	resolution := postmortem.NumberedList(strings.Join(g.collectLines(scanner), "\n"))

	req := entity.PostMortemRequest{
		IncidentName: name,
		IncidentDate: date,
		Duration:     duration,
		Impact:       impact,
		RootCause:    rootCause,
		Timeline:     timeline,
		Resolution:   resolution,
	}

	if opts.AI {
		g.draftBlankFields(&req, impactDefaulted, rootCauseDefaulted)
	}

	rendered := postmortem.Render(documentFrom(req), g.now())

	path := req.Filename()
	if err := os.WriteFile(path, []byte(rendered), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Fprintf(g.out, "\n✓ Post-mortem generated: %s\n", path)
	fmt.Fprintln(g.out, "\nPreview (first 500 chars):")
	fmt.Fprintln(g.out, strings.Repeat("-", 60))
	fmt.Fprintln(g.out, preview(rendered))

	return g.deliver(ctx, opts, req, rendered)
}

// draftBlankFields replaces placeholder defaults with AI drafts and fills
// the action-item table. Draft failures keep the placeholders: the document
// is complete either way.
func (g *Generator) draftBlankFields(req *entity.PostMortemRequest, impactDefaulted, rootCauseDefaulted bool) {
	if impactDefaulted {
		draft, err := g.repo.AI.DraftImpact(req.IncidentName, req.Duration)
		if err != nil {
			slog.Warn("failed to draft impact", slog.Any("err", err))
		} else {
			req.Impact = draft
		}
	}

	if rootCauseDefaulted {
		draft, err := g.repo.AI.DraftRootCause(req.IncidentName, req.Impact)
		if err != nil {
			slog.Warn("failed to draft root cause", slog.Any("err", err))
		} else {
			req.RootCause = draft
		}
	}

	items, err := g.repo.AI.DraftActionItems(req.IncidentName, req.RootCause)
	if err != nil {
		slog.Warn("failed to draft action items", slog.Any("err", err))
		return
	}
	req.ActionItems = items
}

func (g *Generator) prompt(scanner *bufio.Scanner, label string) string {
	fmt.Fprint(g.out, label)
	if !scanner.Scan() {
		return ""
	}
	return scanner.Text()
}

// collectLines reads until a blank line. An immediate blank line yields no
// lines, which the caller's transform turns into the empty string.
func (g *Generator) collectLines(scanner *bufio.Scanner) []string {
	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			break
		}
		lines = append(lines, line)
	}
	return lines
}

func preview(doc string) string {
	runes := []rune(doc)
	if len(runes) > previewChars {
		runes = runes[:previewChars]
	}
	return string(runes) + "..."
}
