package interfaces

import "context"

// TagService defines the local and remote tag operations used for pruning.
type TagService interface {
	// ListTags returns local tags matching the prefix in lexicographic order.
	ListTags(ctx context.Context, prefix string) ([]string, error)

	// DeleteLocalTag removes a tag from the local clone.
	DeleteLocalTag(ctx context.Context, name string) error

	// PushTagDeletion deletes the tag on the configured remote. Implementations
	// must keep the command output away from logs because the remote URL may
	// embed a credential.
	PushTagDeletion(ctx context.Context, name string) error
}
