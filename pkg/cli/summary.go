package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/tugboat-ci/tugboat/pkg/domain/model"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	failColor = color.New(color.FgRed, color.Bold)
)

// printSummary renders the run result for the CI log, one line per asset.
func printSummary(report *model.PublishReport) {
	switch report.Outcome {
	case model.OutcomeNoOp:
		fmt.Println("Nothing to publish: no trigger tag")
		return
	case model.OutcomeReleaseUnresolved:
		warnColor.Printf("Could not resolve release %q, assets were not uploaded\n", report.Intent.ReleaseName)
		return
	}

	verb := "updated"
	if report.ReleaseCreated {
		verb = "created"
	}
	fmt.Printf("Release %q %s (id %d, tag %s)\n",
		report.Intent.ReleaseName, verb, report.ReleaseID, report.Intent.TagName)

	for _, a := range report.Assets {
		switch {
		case a.Error != "" && !a.Uploaded:
			failColor.Printf("  FAIL %s: %s\n", a.Name, a.Error)
		case a.Error != "":
			warnColor.Printf("  WARN %s uploaded, stale copy left behind: %s\n", a.Name, a.Error)
		case a.Replaced:
			okColor.Printf("  OK   %s (replaced)\n", a.Name)
		default:
			okColor.Printf("  OK   %s\n", a.Name)
		}
	}

	if len(report.PrunedTags) > 0 {
		fmt.Printf("Pruned %d stale daily tags: %s\n",
			len(report.PrunedTags), strings.Join(report.PrunedTags, ", "))
	}
	if report.Outcome == model.OutcomeFailed {
		failColor.Println("Run failed, see the log above")
	}
}

// printVerifySummary lists each artifact with its size or problem.
func printVerifySummary(report *model.VerifyReport) {
	for _, r := range report.Results {
		if r.Error != "" {
			failColor.Printf("  MISSING %s: %s\n", r.Name, r.Error)
			continue
		}
		okColor.Printf("  OK      %s (%d bytes)\n", r.Name, r.Size)
	}
}
