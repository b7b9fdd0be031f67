package notify

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/tugboat-ci/tugboat/pkg/domain/interfaces"
	"github.com/tugboat-ci/tugboat/pkg/domain/model"
)

type slackNotifier struct {
	webhookURL string
	repo       string
}

// NewSlack creates a Notifier that posts publish summaries to a Slack
// incoming webhook. repo is the owner/name shown in the message.
func NewSlack(webhookURL, repo string) interfaces.Notifier {
	return &slackNotifier{webhookURL: webhookURL, repo: repo}
}

func (n *slackNotifier) NotifyPublished(ctx context.Context, report *model.PublishReport) error {
	failed := report.FailedAssets()

	color := "good"
	title := fmt.Sprintf("Published %s", report.Intent.ReleaseName)
	if len(failed) > 0 {
		color = "warning"
		title = fmt.Sprintf("Published %s (%d assets failed)", report.Intent.ReleaseName, len(failed))
	}

	fields := []slack.AttachmentField{
		{Title: "Repository", Value: n.repo, Short: true},
		{Title: "Tag", Value: report.Intent.TagName, Short: true},
		{Title: "Uploaded", Value: fmt.Sprintf("%d / %d", report.UploadedCount(), len(report.Assets)), Short: true},
		{Title: "Pruned tags", Value: fmt.Sprintf("%d", len(report.PrunedTags)), Short: true},
	}
	if len(failed) > 0 {
		names := make([]string, 0, len(failed))
		for _, f := range failed {
			names = append(names, f.Name)
		}
		fields = append(fields, slack.AttachmentField{
			Title: "Failed assets",
			Value: strings.Join(names, ", "),
		})
	}

	msg := &slack.WebhookMessage{
		Attachments: []slack.Attachment{{
			Color:  color,
			Title:  title,
			Fields: fields,
			Footer: "run " + report.RunID,
		}},
	}

	if err := slack.PostWebhookContext(ctx, n.webhookURL, msg); err != nil {
		// A transport error embeds the webhook URL, which is a secret. Keep
		// only the inner cause.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return goerr.New("failed to post slack webhook",
				goerr.V("op", urlErr.Op),
				goerr.V("cause", urlErr.Err.Error()))
		}
		return goerr.Wrap(err, "failed to post slack webhook")
	}
	return nil
}
