package postmortem

import (
	"github.com/microcosm-cc/bluemonday"
	blackfriday "github.com/russross/blackfriday/v2"
)

// HTML converts a rendered document to sanitized HTML for browser preview
// and Confluence export. The Markdown contract is untouched; this is a
// presentation-only conversion.
func HTML(markdown string) []byte {
	unsafe := blackfriday.Run([]byte(markdown))
	return bluemonday.UGCPolicy().SanitizeBytes(unsafe)
}
