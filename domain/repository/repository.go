package repository

import (
	"context"
)

// PostMortemExporter publishes a rendered document to an external wiki and
// returns the created page URL. The body is expected in storage-format
// HTML, not Markdown.
type PostMortemExporter interface {
	ExportPostMortem(ctx context.Context, title, body string) (string, error)
}

// Announcer delivers the generated document to a chat channel.
type Announcer interface {
	AnnouncePostMortem(ctx context.Context, filename, title, content string) error
}

// AIRepositorier drafts content for fields the author left blank.
// A nil value means drafting is disabled.
type AIRepositorier interface {
	DraftImpact(incidentName, duration string) (string, error)
	DraftRootCause(incidentName, impact string) (string, error)
	DraftActionItems(incidentName, rootCause string) ([]string, error)
}

// RepositoryFacade bundles the configuration with whichever optional
// integrations are configured. Absent integrations stay nil and the
// handlers treat nil as "feature off".
type RepositoryFacade struct {
	Config    *Config
	Exporter  PostMortemExporter
	Announcer Announcer
	AI        AIRepositorier
}

func NewRepository(config *Config, exporter PostMortemExporter, announcer Announcer, ai AIRepositorier) *RepositoryFacade {
	return &RepositoryFacade{
		Config:    config,
		Exporter:  exporter,
		Announcer: announcer,
		AI:        ai,
	}
}
