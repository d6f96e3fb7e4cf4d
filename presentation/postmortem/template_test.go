package postmortem_test

import (
	"strings"
	"testing"
	"time"

	"github.com/mortem-dev/mortem/presentation/postmortem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)
}

func baseDocument() postmortem.Document {
	return postmortem.Document{
		IncidentName: "API Outage",
		IncidentDate: "2024-01-05",
		Duration:     "2 hours",
		Impact:       "Checkout unavailable for most users",
		RootCause:    "Connection pool exhaustion",
	}
}

// section returns the body between a heading and the following rule.
func section(t *testing.T, out, heading string) string {
	t.Helper()
	_, rest, ok := strings.Cut(out, heading)
	require.True(t, ok, "document is missing %s", heading)
	body, _, _ := strings.Cut(rest, "---")
	return body
}

func TestRenderContainsRequiredFields(t *testing.T) {
	tests := []struct {
		name     string
		doc      postmortem.Document
		wantDate string
	}{
		{
			name:     "parseable date",
			doc:      baseDocument(),
			wantDate: "January 05, 2024",
		},
		{
			name: "unparseable date",
			doc: postmortem.Document{
				IncidentName: "DNS Failure",
				IncidentDate: "not-a-date",
				Duration:     "30 minutes",
				Impact:       "Internal tooling unreachable",
				RootCause:    "Expired zone delegation",
			},
			wantDate: "not-a-date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := postmortem.Render(tt.doc, fixedNow())
			require.NotEmpty(t, out)
			assert.Contains(t, out, tt.doc.IncidentName)
			assert.Contains(t, out, tt.wantDate)
			assert.Contains(t, out, tt.doc.Duration)
			assert.Contains(t, out, tt.doc.Impact)
			assert.Contains(t, out, tt.doc.RootCause)
		})
	}
}

func TestRenderHeader(t *testing.T) {
	out := postmortem.Render(baseDocument(), fixedNow())

	require.True(t, strings.HasPrefix(out, "# Post-Mortem: API Outage\n"))
	assert.Contains(t, out, "**Date:** January 05, 2024  \n")
	assert.Contains(t, out, "**Duration:** 2 hours  \n")
	assert.Contains(t, out, "**Status:** Resolved  \n")
	assert.Contains(t, out, "**Generated:** March 09, 2024 at 14:30 UTC\n")
}

func TestRenderSectionOrder(t *testing.T) {
	out := postmortem.Render(baseDocument(), fixedNow())

	sections := []string{
		"# Post-Mortem:",
		"## Executive Summary",
		"## Timeline",
		"## Impact Assessment",
		"## Root Cause Analysis",
		"## Resolution",
		"## Prevention Checklist",
		"## Action Items",
		"## Lessons Learned",
		"## References",
		"## Sign-off",
	}
	last := -1
	for _, heading := range sections {
		idx := strings.Index(out, heading)
		require.GreaterOrEqual(t, idx, 0, "document is missing %s", heading)
		require.Greater(t, idx, last, "%s is out of order", heading)
		last = idx
	}
}

func TestRenderSynthesizesTimeline(t *testing.T) {
	out := postmortem.Render(baseDocument(), fixedNow())

	body := section(t, out, "## Timeline")
	var bullets []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "- ") {
			bullets = append(bullets, line)
		}
	}
	require.Len(t, bullets, 4)
	for _, bullet := range bullets {
		assert.Contains(t, bullet, "2024-01-05")
		assert.Contains(t, bullet, "14:30 UTC")
	}
	assert.Contains(t, body, "Incident detected")
	assert.Contains(t, body, "Investigation started")
	assert.Contains(t, body, "Root cause identified")
	assert.Contains(t, body, "Incident resolved")
}

func TestRenderKeepsProvidedTimeline(t *testing.T) {
	doc := baseDocument()
	doc.Timeline = "- **10:00 outage begins**\n- **10:20 rollback done**"
	out := postmortem.Render(doc, fixedNow())

	body := section(t, out, "## Timeline")
	assert.Contains(t, body, "10:00 outage begins")
	assert.Contains(t, body, "10:20 rollback done")
	assert.NotContains(t, body, "Incident detected")
}

func TestRenderWhitespaceTimelineIsNotSynthesized(t *testing.T) {
	doc := baseDocument()
	doc.Timeline = "   "
	out := postmortem.Render(doc, fixedNow())

	body := section(t, out, "## Timeline")
	assert.NotContains(t, body, "Incident detected")
	assert.Equal(t, "", strings.TrimSpace(body))
}

func TestRenderNumberedResolution(t *testing.T) {
	doc := baseDocument()
	doc.Resolution = postmortem.NumberedList("step one\nstep two")
	out := postmortem.Render(doc, fixedNow())

	assert.Contains(t, out, "1. step one\n2. step two")
}

func TestRenderSynthesizesResolution(t *testing.T) {
	out := postmortem.Render(baseDocument(), fixedNow())

	body := section(t, out, "### Immediate Actions Taken")
	assert.Contains(t, body, "1. Immediate mitigation steps taken")
	assert.Contains(t, body, "4. Monitoring verified")
}

func TestRenderDefaultActionItems(t *testing.T) {
	out := postmortem.Render(baseDocument(), fixedNow())

	rows := strings.Count(out, "| [Owner] | [Due Date] | Open | [Notes] |")
	assert.Equal(t, 4, rows)
	assert.Contains(t, out, "| Review and update monitoring alerts | [Owner] | [Due Date] | Open | [Notes] |")
}

func TestRenderCustomActionItems(t *testing.T) {
	doc := baseDocument()
	doc.ActionItems = []string{"Resize the connection pool", "Add saturation alerting"}
	out := postmortem.Render(doc, fixedNow())

	rows := strings.Count(out, "| [Owner] | [Due Date] | Open | [Notes] |")
	assert.Equal(t, 2, rows)
	assert.Contains(t, out, "| Resize the connection pool | [Owner] | [Due Date] | Open | [Notes] |")
	assert.NotContains(t, out, "Review and update monitoring alerts")
}

func TestRenderDeterministic(t *testing.T) {
	doc := baseDocument()
	doc.Timeline = "- **10:00 outage begins**"
	doc.Resolution = "1. rolled back"

	first := postmortem.Render(doc, fixedNow())
	second := postmortem.Render(doc, fixedNow())
	assert.Equal(t, first, second)
}

func TestRenderSignOffRepeatsDate(t *testing.T) {
	out := postmortem.Render(baseDocument(), fixedNow())

	body := section(t, out, "## Sign-off")
	assert.Contains(t, body, "**Prepared by:** [Name]  \n")
	assert.Contains(t, body, "**Reviewed by:** [Name]  \n")
	assert.Contains(t, body, "**Date:** January 05, 2024")
	assert.True(t, strings.HasSuffix(out, "*This post-mortem was generated using the Post-Mortem Template Generator. Please review and customize as needed.*\n"))
}
