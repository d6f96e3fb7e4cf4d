package blocks

import (
	"fmt"

	"github.com/slack-go/slack"
)

// PostMortemGenerated announces a freshly generated document in the channel
// the file was uploaded to.
func PostMortemGenerated(title, filename string) []slack.Block {
	return []slack.Block{
		slack.NewHeaderBlock(
			slack.NewTextBlockObject("plain_text", "✅ Post-mortem generated", false, false),
		),
		slack.NewSectionBlock(
			slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*%s*\nThe full document was uploaded as `%s`. Please review and fill in the open sections.", title, filename), false, false),
			nil,
			nil,
		),
	}
}
