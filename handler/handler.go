package handler

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/mortem-dev/mortem/domain/entity"
	"github.com/mortem-dev/mortem/domain/repository"
	"github.com/mortem-dev/mortem/presentation/postmortem"
	"github.com/slack-go/slack"
)

func timeNow() time.Time {
	return time.Now().UTC()
}

// BuildRepository wires the configuration and whichever integrations it
// enables. Unconfigured integrations stay nil and the flows treat nil as
// "feature off".
func BuildRepository(configPath string) (*repository.RepositoryFacade, error) {
	cfg, err := repository.NewConfigRepository(configPath)
	if err != nil {
		return nil, err
	}

	var exporter repository.PostMortemExporter
	if cfg.ConfluenceEnabled() {
		r, err := repository.NewConfluenceRepository(
			cfg.Confluence.Domain,
			os.Getenv("CONFLUENCE_USERNAME"),
			os.Getenv("CONFLUENCE_PASSWORD"),
			cfg.Confluence.Space,
			cfg.Confluence.AncestorID,
		)
		if err != nil {
			return nil, err
		}
		exporter = r
	}

	var announcer repository.Announcer
	if cfg.SlackEnabled() {
		announcer = repository.NewSlackRepository(
			slack.New(os.Getenv("SLACK_BOT_TOKEN")),
			cfg.Slack.Channel,
		)
	}

	repo := repository.NewRepository(cfg, exporter, announcer, nil)

	ai, err := repository.NewAIRepository()
	if err != nil {
		return nil, err
	}
	if ai != nil {
		repo.AI = ai
	}

	return repo, nil
}

// Generate runs the command-line flow against stdin/stdout.
func Generate(ctx context.Context, configPath string, opts GenerateOptions) error {
	repo, err := BuildRepository(configPath)
	if err != nil {
		return err
	}
	return NewGenerator(repo, timeNow, os.Stdin, os.Stdout).Run(ctx, opts)
}

// Serve runs the web front end until the listener fails.
func Serve(ctx context.Context, configPath, listen string) error {
	repo, err := BuildRepository(configPath)
	if err != nil {
		return err
	}
	if listen == "" {
		listen = repo.Config.Listen
	}

	slog.Info("starting server", slog.String("listen", listen))
	return NewServer(timeNow).Run(listen)
}

func documentFrom(req entity.PostMortemRequest) postmortem.Document {
	return postmortem.Document{
		IncidentName: req.IncidentName,
		IncidentDate: req.IncidentDate,
		Duration:     req.Duration,
		Impact:       req.Impact,
		RootCause:    req.RootCause,
		Timeline:     req.Timeline,
		Resolution:   req.Resolution,
		ActionItems:  req.ActionItems,
	}
}
