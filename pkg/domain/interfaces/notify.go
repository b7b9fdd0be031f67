package interfaces

import (
	"context"

	"github.com/tugboat-ci/tugboat/pkg/domain/model"
)

// Notifier announces a finished publish run to an external channel.
type Notifier interface {
	NotifyPublished(ctx context.Context, report *model.PublishReport) error
}
