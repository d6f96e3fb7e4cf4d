package repository

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// NewConfigRepository loads configuration with precedence defaults < file <
// environment. A missing file at path is tolerated so the tool runs with
// zero configuration; an unreadable or malformed file is an error.
func NewConfigRepository(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Defaults also register the keys so environment overrides resolve.
	v.SetDefault("listen", ":5001")
	v.SetDefault("confluence.domain", "")
	v.SetDefault("confluence.space", "")
	v.SetDefault("confluence.ancestor_id", "")
	v.SetDefault("slack.channel", "")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config error: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config error: %w", err)
	}
	valid := validator.New()
	if err := valid.Struct(c); err != nil {
		return nil, fmt.Errorf("validate config error: %w", err)
	}

	return &c, nil
}

type Config struct {
	Listen     string           `mapstructure:"listen" validate:"required"`
	Confluence ConfluenceConfig `mapstructure:"confluence"`
	Slack      SlackConfig      `mapstructure:"slack"`
}

type ConfluenceConfig struct {
	AncestorID string `mapstructure:"ancestor_id"`
	Space      string `mapstructure:"space"`
	Domain     string `mapstructure:"domain"`
}

type SlackConfig struct {
	Channel string `mapstructure:"channel"`
}

// ConfluenceEnabled reports whether the exporter can be built: page
// structure comes from the config file, credentials from the environment.
func (c *Config) ConfluenceEnabled() bool {
	return c.Confluence.Domain != "" &&
		os.Getenv("CONFLUENCE_USERNAME") != "" &&
		os.Getenv("CONFLUENCE_PASSWORD") != ""
}

// SlackEnabled reports whether announcements can be delivered.
func (c *Config) SlackEnabled() bool {
	return c.Slack.Channel != "" && os.Getenv("SLACK_BOT_TOKEN") != ""
}
