package model

import "time"

// Release mirrors the remote release record fields tugboat operates on.
type Release struct {
	ID         int64
	Name       string
	TagName    string
	Draft      bool
	Prerelease bool
	CreatedAt  time.Time
}

// RemoteAsset identifies an asset already attached to a remote release. It is
// looked up by name and deleted by id before re-upload.
type RemoteAsset struct {
	ID   int64
	Name string
}
