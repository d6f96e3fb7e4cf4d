package postmortem

import (
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout      = "2006-01-02"
	longDateLayout  = "January 02, 2006"
	generatedLayout = "January 02, 2006 at 15:04 UTC"
	clockLayout     = "15:04"
)

// Document carries the fields substituted into the post-mortem skeleton.
// Timeline and Resolution are expected pre-formatted; when empty they are
// replaced by synthesized placeholder blocks, as is an empty ActionItems.
type Document struct {
	IncidentName string
	IncidentDate string
	Duration     string
	Impact       string
	RootCause    string
	Timeline     string
	Resolution   string
	ActionItems  []string
}

// Render produces the complete Markdown post-mortem for doc. The now value
// feeds every clock-dependent slot (generation stamp and synthesized
// timeline), so identical inputs render identical output.
func Render(doc Document, now time.Time) string {
	formattedDate := doc.IncidentDate
	if d, err := time.Parse(dateLayout, doc.IncidentDate); err == nil {
		formattedDate = d.Format(longDateLayout)
	}

	timeline := doc.Timeline
	if timeline == "" {
		timeline = defaultTimeline(doc.IncidentDate, now)
	}

	resolution := doc.Resolution
	if resolution == "" {
		resolution = defaultResolution
	}

	actionItems := doc.ActionItems
	if len(actionItems) == 0 {
		actionItems = defaultActionItems()
	}
	var rows strings.Builder
	for _, item := range actionItems {
		fmt.Fprintf(&rows, "| %s | [Owner] | [Due Date] | Open | [Notes] |\n", item)
	}

	return fmt.Sprintf(skeleton,
		doc.IncidentName,
		formattedDate,
		doc.Duration,
		now.Format(generatedLayout),
		doc.IncidentName,
		formattedDate,
		doc.Duration,
		doc.Impact,
		formattedDate,
		strings.TrimSpace(timeline),
		doc.Impact,
		doc.Duration,
		doc.RootCause,
		strings.TrimSpace(resolution),
		rows.String(),
		formattedDate,
	)
}

func defaultTimeline(incidentDate string, now time.Time) string {
	stamp := now.Format(clockLayout)
	events := []string{
		"Incident detected",
		"Investigation started",
		"Root cause identified",
		"Incident resolved",
	}
	lines := make([]string, 0, len(events))
	for _, event := range events {
		lines = append(lines, fmt.Sprintf("- **%s %s UTC**: %s", incidentDate, stamp, event))
	}
	return strings.Join(lines, "\n")
}

const defaultResolution = `1. Immediate mitigation steps taken
2. Root cause addressed
3. System restored to normal operation
4. Monitoring verified`

func defaultActionItems() []string {
	return []string{
		"Review and update monitoring alerts",
		"Document lessons learned",
		"Update runbooks if applicable",
		"Schedule follow-up review meeting",
	}
}

// Trailing backslashes in the literal become the document's two-space
// Markdown hard breaks.
var skeleton = strings.ReplaceAll(rawSkeleton, "\\\n", "  \n")

const rawSkeleton = `# Post-Mortem: %s

**Date:** %s\
**Duration:** %s\
**Status:** Resolved\
**Generated:** %s

---

## Executive Summary

**Incident:** %s\
**Date:** %s\
**Duration:** %s\
**Impact:** %s

This document outlines the timeline, root cause analysis, and preventive measures for the incident that occurred on %s.

---

## Timeline

%s

---

## Impact Assessment

### Affected Systems
- [ ] System/service name
- [ ] User-facing impact
- [ ] Internal tooling impact

### User Impact
%s

### Business Impact
- [ ] Revenue impact (if applicable)
- [ ] Customer satisfaction impact
- [ ] SLA/SLO violations

### Metrics
- **Uptime Impact:** %s
- **Error Rate:** [To be filled]
- **Affected Users:** [To be filled]

---

## Root Cause Analysis

### Primary Root Cause
%s

### Contributing Factors
- [ ] Factor 1: [Description]
- [ ] Factor 2: [Description]
- [ ] Factor 3: [Description]

### Why It Happened
1. **Immediate Cause:** [What directly caused the incident]
2. **Underlying Cause:** [Why the immediate cause occurred]
3. **Systemic Issues:** [Broader issues that allowed this to happen]

### Detection Gap
- [ ] Why wasn't this detected earlier?
- [ ] What monitoring/alerting was missing?
- [ ] How can we detect this faster next time?

---

## Resolution

### Immediate Actions Taken
%s

### Resolution Steps
1. [Step 1]
2. [Step 2]
3. [Step 3]

### Verification
- [ ] System functionality verified
- [ ] Monitoring confirmed normal operation
- [ ] No residual issues detected

---

## Prevention Checklist

### Short-term (Next 1-2 Weeks)
- [ ] Fix the immediate root cause
- [ ] Add/update monitoring alerts
- [ ] Update documentation
- [ ] Communicate findings to team

### Medium-term (Next 1-3 Months)
- [ ] Implement preventive measures
- [ ] Review and update runbooks
- [ ] Conduct team training if needed
- [ ] Review similar systems for same issues

### Long-term (Ongoing)
- [ ] Regular review of incident patterns
- [ ] Continuous improvement of monitoring
- [ ] Regular post-mortem reviews
- [ ] Update incident response procedures

### Technical Improvements
- [ ] Code changes to prevent recurrence
- [ ] Infrastructure improvements
- [ ] Process improvements
- [ ] Tooling improvements

---

## Action Items

| Item | Owner | Due Date | Status | Notes |
|------|-------|----------|--------|-------|
%s
---

## Lessons Learned

### What Went Well
- [ ] Positive aspect 1
- [ ] Positive aspect 2

### What Could Be Improved
- [ ] Improvement area 1
- [ ] Improvement area 2

### Key Takeaways
1. [Takeaway 1]
2. [Takeaway 2]
3. [Takeaway 3]

---

## References

- [Related tickets/PRs]
- [Monitoring dashboards]
- [Documentation links]
- [Related incidents]

---

## Sign-off

**Prepared by:** [Name]\
**Reviewed by:** [Name]\
**Date:** %s

---

*This post-mortem was generated using the Post-Mortem Template Generator. Please review and customize as needed.*
`
