package config

import "github.com/urfave/cli/v3"

// Notify holds notification configuration. Empty URL disables notification.
type Notify struct {
	SlackWebhookURL string `masq:"secret"`
}

// Flags returns CLI flags for notification configuration
func (c *Notify) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL for publish summaries",
			Destination: &c.SlackWebhookURL,
			Sources:     cli.EnvVars("TUGBOAT_SLACK_WEBHOOK_URL"),
		},
	}
}

// Enabled reports whether a notification channel is configured.
func (c *Notify) Enabled() bool {
	return c.SlackWebhookURL != ""
}
