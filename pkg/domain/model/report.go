package model

// Outcome summarizes how a publish run ended.
type Outcome string

const (
	// OutcomePublished means a release was resolved and asset sync ran.
	OutcomePublished Outcome = "published"
	// OutcomeNoOp means the run had no trigger tag and did nothing.
	OutcomeNoOp Outcome = "no_op"
	// OutcomeReleaseUnresolved means no release id could be obtained and the
	// run ended early without uploading anything (soft failure).
	OutcomeReleaseUnresolved Outcome = "release_unresolved"
	// OutcomeFailed means the run aborted with a hard error.
	OutcomeFailed Outcome = "failed"
)

// AssetResult records the delete/upload outcome for one manifest entry.
type AssetResult struct {
	Name     string `json:"name"`
	Replaced bool   `json:"replaced"` // a stale remote asset was deleted first
	Uploaded bool   `json:"uploaded"`
	Error    string `json:"error,omitempty"` // last failure for this asset, if any
}

// PublishReport is the complete record of one publish run.
type PublishReport struct {
	RunID          string        `json:"run_id"`
	Intent         ReleaseIntent `json:"intent"`
	Outcome        Outcome       `json:"outcome"`
	ReleaseID      int64         `json:"release_id,omitempty"`
	ReleaseCreated bool          `json:"release_created,omitempty"`
	Assets         []AssetResult `json:"assets,omitempty"`
	PrunedTags     []string      `json:"pruned_tags,omitempty"`
}

// UploadedCount returns how many assets were uploaded successfully.
func (r *PublishReport) UploadedCount() int {
	n := 0
	for _, a := range r.Assets {
		if a.Uploaded {
			n++
		}
	}
	return n
}

// FailedAssets returns the asset results that recorded an error.
func (r *PublishReport) FailedAssets() []AssetResult {
	var failed []AssetResult
	for _, a := range r.Assets {
		if a.Error != "" {
			failed = append(failed, a)
		}
	}
	return failed
}
