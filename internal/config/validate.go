package config

import (
	"fmt"
	"net/url"
	"regexp"
)

// channelPattern matches an unquoted PostgreSQL identifier usable in LISTEN.
var channelPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]{0,62}$`)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	// One connection is held by the change feed listener.
	if c.Database.MaxConns < 2 {
		return fmt.Errorf("database.max_conns must be >= 2 (got %d)", c.Database.MaxConns)
	}

	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	if err := c.Board.validate(); err != nil {
		return fmt.Errorf("board: %w", err)
	}

	if err := c.Notify.validate(); err != nil {
		return fmt.Errorf("notify: %w", err)
	}

	return nil
}

func (b *BoardConfig) validate() error {
	if b.MaxQuestionLength <= 0 {
		return fmt.Errorf("max_question_length must be > 0 (got %d)", b.MaxQuestionLength)
	}
	if b.MaxAnswerLength <= 0 {
		return fmt.Errorf("max_answer_length must be > 0 (got %d)", b.MaxAnswerLength)
	}
	return nil
}

func (n *NotifyConfig) validate() error {
	if !channelPattern.MatchString(n.Channel) {
		return fmt.Errorf("channel %q is not a valid identifier", n.Channel)
	}
	if n.ReconnectDelay <= 0 {
		return fmt.Errorf("reconnect_delay must be > 0 (got %v)", n.ReconnectDelay)
	}
	if n.SubscriberBuffer < 1 {
		return fmt.Errorf("subscriber_buffer must be >= 1 (got %d)", n.SubscriberBuffer)
	}
	if n.PingInterval <= 0 {
		return fmt.Errorf("ping_interval must be > 0 (got %v)", n.PingInterval)
	}
	return nil
}

// Validate checks the client configuration.
func (c *ClientConfig) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api url must use http or https (got %q)", c.APIURL)
	}
	if u.Host == "" {
		return fmt.Errorf("api url must include a host (got %q)", c.APIURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be > 0 (got %v)", c.RequestTimeout)
	}
	if c.ReconnectDelay <= 0 {
		return fmt.Errorf("reconnect_delay must be > 0 (got %v)", c.ReconnectDelay)
	}
	return nil
}
