package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sort"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/tugboat-ci/tugboat/pkg/domain/interfaces"
)

type repo struct {
	workDir   string
	remoteURL string
}

// New creates a TagService for the checkout at workDir. Deletion pushes go to
// remoteURL, which may be a URL built with AuthRemoteURL or any push target
// git accepts.
func New(workDir, remoteURL string) interfaces.TagService {
	return &repo{workDir: workDir, remoteURL: remoteURL}
}

// AuthRemoteURL builds an HTTPS push URL with the token embedded, the form
// GitHub documents for installation tokens. The result is a credential: pass
// it to git and nowhere else.
func AuthRemoteURL(host, owner, name, token string) string {
	return fmt.Sprintf("https://x-access-token:%s@%s/%s/%s.git", token, host, owner, name)
}

// ListTags returns local tags starting with prefix, lexicographically sorted.
func (r *repo) ListTags(ctx context.Context, prefix string) ([]string, error) {
	pattern := prefix + "*"
	cmd := exec.CommandContext(ctx, "git", "-C", r.workDir, "tag", "--list", pattern)
	out, err := cmd.Output()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list tags", goerr.V("pattern", pattern))
	}

	var tags []string
	for _, line := range strings.Split(string(out), "\n") {
		if tag := strings.TrimSpace(line); tag != "" {
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags, nil
}

func (r *repo) DeleteLocalTag(ctx context.Context, name string) error {
	cmd := exec.CommandContext(ctx, "git", "-C", r.workDir, "tag", "-d", name)
	if out, err := cmd.CombinedOutput(); err != nil {
		return goerr.Wrap(err, "failed to delete local tag",
			goerr.V("tag", name),
			goerr.V("output", strings.TrimSpace(string(out))))
	}
	return nil
}

// PushTagDeletion pushes an empty refspec to drop the tag on the remote. The
// remote URL can embed a token, so git's output is discarded outright instead
// of being captured into the error; the error carries the exit code only.
func (r *repo) PushTagDeletion(ctx context.Context, name string) error {
	refspec := ":refs/tags/" + name
	cmd := exec.CommandContext(ctx, "git", "-C", r.workDir, "push", "--quiet", r.remoteURL, refspec)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return goerr.Wrap(err, "failed to push tag deletion",
				goerr.V("tag", name),
				goerr.V("exit_code", exitErr.ExitCode()))
		}
		return goerr.Wrap(err, "failed to push tag deletion", goerr.V("tag", name))
	}
	return nil
}
