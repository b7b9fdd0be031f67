package model

import "strings"

// IntentKind classifies what a publish run should do with its trigger tag.
type IntentKind string

const (
	// IntentDailyBuild updates the rolling prerelease fed by scheduled daily tags.
	IntentDailyBuild IntentKind = "daily_build"
	// IntentManualDraft creates or updates a draft release named after the tag.
	IntentManualDraft IntentKind = "manual_draft"
	// IntentNone means the run was triggered without a tag and does nothing.
	IntentNone IntentKind = "none"
)

// DailyTagPrefix marks tags produced by scheduled builds, e.g. daily/20260825.
const DailyTagPrefix = "daily"

// DailyReleaseName is the fixed name of the rolling daily release. The date
// suffix of the trigger tag never leaks into the release name.
const DailyReleaseName = "Daily Build"

// Trigger captures what started the current run and where its build outputs
// live. It is read once at startup and never re-read.
type Trigger struct {
	Tag       string // tag that triggered the build, empty for non-tag runs
	Scheduled bool   // true for cron-style runs
	Workspace string // working-tree root the manifest paths resolve against
}

// ReleaseIntent is the decision derived from the trigger. It is computed once
// per run and consumed as-is by every later stage.
type ReleaseIntent struct {
	Kind        IntentKind `json:"kind"`
	TagName     string     `json:"tag_name,omitempty"`
	ReleaseName string     `json:"release_name,omitempty"`
	Draft       bool       `json:"draft"`
	Prerelease  bool       `json:"prerelease"`
}

// ResolveIntent derives the release intent from the trigger. It is pure: no
// network, no clock.
func ResolveIntent(tr Trigger) ReleaseIntent {
	if tr.Tag == "" {
		return ReleaseIntent{Kind: IntentNone}
	}

	if strings.HasPrefix(tr.Tag, DailyTagPrefix) {
		return ReleaseIntent{
			Kind:        IntentDailyBuild,
			TagName:     tr.Tag,
			ReleaseName: DailyReleaseName,
			Draft:       false,
			Prerelease:  true,
		}
	}

	return ReleaseIntent{
		Kind:        IntentManualDraft,
		TagName:     tr.Tag,
		ReleaseName: tr.Tag,
		Draft:       true,
		Prerelease:  false,
	}
}

// IsNoOp reports whether the run should terminate without side effects.
func (i ReleaseIntent) IsNoOp() bool {
	return i.Kind == IntentNone
}
