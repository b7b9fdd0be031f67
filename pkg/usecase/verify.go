package usecase

import (
	"context"
	"os"

	"github.com/m-mizutani/ctxlog"

	"github.com/tugboat-ci/tugboat/pkg/domain/interfaces"
	"github.com/tugboat-ci/tugboat/pkg/domain/model"
)

type verifyUseCase struct{}

// NewVerify creates the offline artifact preflight use case.
func NewVerify() interfaces.VerifyUseCase {
	return &verifyUseCase{}
}

// Verify stats every manifest artifact under the workspace. It never touches
// the network, so it is safe to run before the release tag even exists.
func (uc *verifyUseCase) Verify(ctx context.Context, workspace string, manifest *model.Manifest) (*model.VerifyReport, error) {
	logger := ctxlog.From(ctx)

	report := &model.VerifyReport{Workspace: workspace}
	for _, a := range manifest.Assets(workspace) {
		res := model.VerifyResult{Name: a.Name, Path: a.Path}

		info, err := os.Stat(a.Path)
		switch {
		case err != nil:
			res.Error = err.Error()
			logger.Warn("Artifact missing", "asset", a.Name, "path", a.Path)
		case info.IsDir():
			res.Error = "artifact path is a directory"
			logger.Warn("Artifact path is a directory", "asset", a.Name, "path", a.Path)
		default:
			res.Size = info.Size()
			logger.Debug("Artifact present", "asset", a.Name, "size_bytes", res.Size)
		}

		report.Results = append(report.Results, res)
	}

	return report, nil
}
