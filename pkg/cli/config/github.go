package config

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// GitHub holds repository and authentication configuration. Either a plain
// token or the full GitHub App triple (app id, installation id, private key)
// must be present.
type GitHub struct {
	Token             string `masq:"secret"`
	Repo              string
	AppID             string
	AppInstallationID string
	AppPrivateKey     string `masq:"secret"`
	AppPrivateKeyFile string
	ServerURL         string
	APIURL            string
	UploadURL         string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token (PAT or Actions installation token)",
			Destination: &c.Token,
			Sources:     cli.EnvVars("TUGBOAT_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-repo",
			Usage:       "Target repository as owner/name",
			Destination: &c.Repo,
			Sources:     cli.EnvVars("TUGBOAT_GITHUB_REPOSITORY", "GITHUB_REPOSITORY"),
		},
		&cli.StringFlag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID (App authentication)",
			Destination: &c.AppID,
			Sources:     cli.EnvVars("TUGBOAT_GITHUB_APP_ID"),
		},
		&cli.StringFlag{
			Name:        "github-app-installation-id",
			Usage:       "GitHub App installation ID (App authentication)",
			Destination: &c.AppInstallationID,
			Sources:     cli.EnvVars("TUGBOAT_GITHUB_APP_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "github-app-private-key",
			Usage:       "GitHub App private key in PEM format",
			Destination: &c.AppPrivateKey,
			Sources:     cli.EnvVars("TUGBOAT_GITHUB_APP_PRIVATE_KEY"),
		},
		&cli.StringFlag{
			Name:        "github-app-private-key-file",
			Usage:       "Path to the GitHub App private key PEM file",
			Destination: &c.AppPrivateKeyFile,
			Sources:     cli.EnvVars("TUGBOAT_GITHUB_APP_PRIVATE_KEY_FILE"),
		},
		&cli.StringFlag{
			Name:        "github-server-url",
			Usage:       "GitHub server URL, for git pushes",
			Value:       "https://github.com",
			Destination: &c.ServerURL,
			Sources:     cli.EnvVars("TUGBOAT_GITHUB_SERVER_URL", "GITHUB_SERVER_URL"),
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub Enterprise API base URL (e.g. https://ghe.example.com/api/v3/)",
			Destination: &c.APIURL,
			Sources:     cli.EnvVars("TUGBOAT_GITHUB_API_URL"),
		},
		&cli.StringFlag{
			Name:        "github-upload-url",
			Usage:       "GitHub Enterprise upload base URL (e.g. https://ghe.example.com/api/uploads/)",
			Destination: &c.UploadURL,
			Sources:     cli.EnvVars("TUGBOAT_GITHUB_UPLOAD_URL"),
		},
	}
}

// Validate checks that the repository is parseable and exactly one complete
// authentication method is configured.
func (c *GitHub) Validate() error {
	if _, _, err := c.ParseRepo(); err != nil {
		return err
	}
	if c.Token == "" && !c.HasAppAuth() {
		return goerr.New("GitHub authentication is not configured: set github-token or the github-app-* flags")
	}
	if c.HasAppAuth() {
		if _, _, err := c.appIDs(); err != nil {
			return err
		}
		if c.AppPrivateKey == "" && c.AppPrivateKeyFile == "" {
			return goerr.New("GitHub App private key is not configured")
		}
	}
	return nil
}

// HasAppAuth reports whether App authentication is requested. App credentials
// take precedence over a plain token.
func (c *GitHub) HasAppAuth() bool {
	return c.AppID != "" || c.AppInstallationID != ""
}

// ParseRepo splits the owner/name repository identifier.
func (c *GitHub) ParseRepo() (owner, name string, err error) {
	owner, name, ok := strings.Cut(c.Repo, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", goerr.New("repository must be owner/name", goerr.V("repo", c.Repo))
	}
	return owner, name, nil
}

// AppCredentials returns the parsed App IDs.
func (c *GitHub) AppCredentials() (appID, installationID int64, err error) {
	return c.appIDs()
}

func (c *GitHub) appIDs() (int64, int64, error) {
	appID, err := strconv.ParseInt(c.AppID, 10, 64)
	if err != nil {
		return 0, 0, goerr.New("github-app-id must be an integer", goerr.V("app_id", c.AppID))
	}
	installationID, err := strconv.ParseInt(c.AppInstallationID, 10, 64)
	if err != nil {
		return 0, 0, goerr.New("github-app-installation-id must be an integer",
			goerr.V("installation_id", c.AppInstallationID))
	}
	return appID, installationID, nil
}

// ServerHost returns the host used to build git push URLs.
func (c *GitHub) ServerHost() (string, error) {
	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Host == "" {
		return "", goerr.New("invalid GitHub server URL", goerr.V("url", c.ServerURL))
	}
	return u.Host, nil
}
