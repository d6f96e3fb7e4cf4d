package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Songmu/retry"
	ttlcache "github.com/jellydator/ttlcache/v3"
	"github.com/mortem-dev/mortem/presentation/blocks"
	"github.com/slack-go/slack"
)

var ErrSlackNotFound = fmt.Errorf("not found")

type SlackRepository struct {
	client        *slack.Client
	channel       string
	channelsCache *ttlcache.Cache[string, []slack.Channel]
}

// NewSlackRepository wraps a Slack client bound to the announcement
// channel. Channel listings are cached for an hour and refreshed on expiry.
func NewSlackRepository(client *slack.Client, channel string) *SlackRepository {
	r := &SlackRepository{
		client:        client,
		channel:       channel,
		channelsCache: ttlcache.New(ttlcache.WithTTL[string, []slack.Channel](time.Hour)),
	}
	go r.channelsCache.Start()

	r.channelsCache.OnEviction(func(ctx context.Context, _ ttlcache.EvictionReason, _ *ttlcache.Item[string, []slack.Channel]) {
		slog.Info("Refreshing channels cache")
		if _, err := r.getChannels(); err != nil {
			slog.Error("Failed to refresh channels cache", slog.Any("err", err))
		}
	})
	return r
}

func (h *SlackRepository) getChannels() ([]slack.Channel, error) {
	cacheKey := "channels"
	if channels := h.channelsCache.Get(cacheKey); channels != nil {
		return channels.Value(), nil
	}
	nextCursor := ""
	channels := make([]slack.Channel, 0)
	for {
		cs, next, err := h.client.GetConversations(&slack.GetConversationsParameters{
			Limit:           1000,
			Cursor:          nextCursor,
			ExcludeArchived: true,
		})
		if err != nil {
			return nil, err
		}
		channels = append(channels, cs...)
		if next == "" {
			break
		}
		nextCursor = next
	}

	h.channelsCache.Set(cacheKey, channels, ttlcache.DefaultTTL)
	return channels, nil
}

func (h *SlackRepository) GetChannelByName(name string) (*slack.Channel, error) {
	channels, err := h.getChannels()
	if err != nil {
		return nil, err
	}
	name = strings.TrimPrefix(name, "#")
	for _, c := range channels {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, ErrSlackNotFound
}

// AnnouncePostMortem uploads the document to the configured channel and
// posts a short confirmation message.
func (h *SlackRepository) AnnouncePostMortem(ctx context.Context, filename, title, content string) error {
	channel, err := h.GetChannelByName(h.channel)
	if err != nil {
		return fmt.Errorf("failed to resolve channel %s: %w", h.channel, err)
	}

	err = retry.Retry(3, 3*time.Second, func() error {
		_, err := h.client.UploadFileV2(slack.UploadFileV2Parameters{
			Channel:  channel.ID,
			Filename: filename,
			Title:    title,
			AltTxt:   title,
			Content:  content,
			FileSize: len(content),
		})
		if err != nil {
			slog.Warn("UploadFileV2", slog.String("channel", channel.ID), slog.Any("err", err))
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to upload post-mortem: %w", err)
	}

	err = retry.Retry(3, 3*time.Second, func() error {
		_, _, err := h.client.PostMessage(
			channel.ID,
			slack.MsgOptionBlocks(blocks.PostMortemGenerated(title, filename)...),
		)
		if err != nil {
			slog.Warn("PostMessage", slog.String("channel", channel.ID), slog.Any("err", err))
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to post announcement: %w", err)
	}

	return nil
}
