package postmortem

import (
	"fmt"
	"strings"
)

// BulletListBold rewrites newline-separated text as bold bullet items, one
// per non-blank line. Lines are trimmed and blank lines dropped; input with
// no surviving lines yields "" so Render falls back to its synthesized
// timeline. This is the request-surface styling.
func BulletListBold(s string) string {
	lines := cleanLines(s)
	for i, line := range lines {
		lines[i] = fmt.Sprintf("- **%s**", line)
	}
	return strings.Join(lines, "\n")
}

// BulletList is the plain-bullet variant used by the interactive prompts.
func BulletList(s string) string {
	lines := cleanLines(s)
	for i, line := range lines {
		lines[i] = fmt.Sprintf("- %s", line)
	}
	return strings.Join(lines, "\n")
}

// NumberedList rewrites newline-separated text as a numbered list in input
// order, with the same trim-and-drop treatment as the bullet transforms.
func NumberedList(s string) string {
	lines := cleanLines(s)
	for i, line := range lines {
		lines[i] = fmt.Sprintf("%d. %s", i+1, line)
	}
	return strings.Join(lines, "\n")
}

func cleanLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
