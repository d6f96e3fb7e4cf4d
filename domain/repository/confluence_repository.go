package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Songmu/retry"
	goconfluence "github.com/virtomize/confluence-go-api"
)

type ConfluenceRepository struct {
	ancestorID string
	spaceKey   string
	domain     string
	client     *goconfluence.API
}

func NewConfluenceRepository(domain, user, password, spaceKey, ancestorID string) (*ConfluenceRepository, error) {
	api, err := goconfluence.NewAPI(
		fmt.Sprintf("https://%s.atlassian.net/wiki/rest/api", domain),
		user,
		password)
	if err != nil {
		return nil, fmt.Errorf("failed to create confluence api: %w", err)
	}

	return &ConfluenceRepository{
		ancestorID: ancestorID,
		spaceKey:   spaceKey,
		domain:     domain,
		client:     api,
	}, nil
}

// ExportPostMortem creates a wiki page holding the document body and
// returns its view URL. The body must already be storage-format HTML.
func (c *ConfluenceRepository) ExportPostMortem(ctx context.Context, title, body string) (string, error) {
	data := &goconfluence.Content{
		Type:  "page",
		Title: title,
		Body: goconfluence.Body{
			Storage: goconfluence.Storage{
				Value:          body,
				Representation: "storage",
			},
		},
		Version: &goconfluence.Version{ // mandatory
			Number: 1,
		},
	}
	if c.ancestorID != "" {
		data.Ancestors = append(data.Ancestors, goconfluence.Ancestor{
			ID: c.ancestorID,
		})
	}

	if c.spaceKey != "" {
		data.Space = &goconfluence.Space{
			Key: c.spaceKey,
		}
	}

	var content *goconfluence.Content
	err := retry.Retry(3, 3*time.Second, func() error {
		var err error
		content, err = c.client.CreateContent(data)
		if err != nil {
			slog.Warn("CreateContent", slog.String("title", title), slog.Any("err", err))
		}
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to create confluence page: %w", err)
	}

	return fmt.Sprintf("https://%s.atlassian.net/wiki/pages/viewpage.action?pageId=%s", c.domain, content.ID), nil
}
