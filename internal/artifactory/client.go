package artifactory

import (
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/boostorg/release-publisher/internal/release"
	"github.com/boostorg/release-publisher/internal/utils/logger"
	"github.com/boostorg/release-publisher/internal/utils/shell"
)

// DefaultBaseURL is the artifact repository all snapshots and releases
// live under.
const DefaultBaseURL = "https://boostorg.jfrog.io/artifactory/"

// Client talks to the artifact repository two ways: plain HTTP GET for
// downloads, and the pre-authenticated jfrog CLI for server-side copy and
// upload. Remote-mutating calls go through the Runner so their exit status
// is observable; per the publishing workflow a failing copy or upload is
// logged and skipped, never fatal.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Runner     shell.Runner
	Progress   bool
}

// NewClient returns a Client against the default repository URL.
func NewClient(runner shell.Runner) *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		HTTPClient: newHTTPClient(),
		Runner:     runner,
	}
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			TLSClientConfig:   &tls.Config{MinVersion: tls.VersionTLS12},
			ForceAttemptHTTP2: true,
		},
	}
}

// DownloadFile streams one remote object into destFile. No retry, no
// resume, no transfer-time integrity check: integrity is verified later
// from the sidecar metadata.
func (c *Client) DownloadFile(repoPath, fileName, destFile string) error {
	url := c.BaseURL + repoPath + fileName

	resp, err := c.HTTPClient.Get(url)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download %s: bad status: %s", url, resp.Status)
	}

	out, err := os.Create(destFile)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", destFile, err)
	}
	defer out.Close()

	var dst io.Writer = out
	if c.Progress && resp.ContentLength > 0 {
		bar := progressbar.NewOptions64(resp.ContentLength,
			progressbar.OptionSetDescription(fmt.Sprintf("downloading %s", fileName)),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowBytes(true),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
		dst = io.MultiWriter(out, bar)
	}

	if _, err := io.Copy(dst, resp.Body); err != nil {
		return fmt.Errorf("failed to write %s: %w", destFile, err)
	}
	return nil
}

// FetchArtifacts downloads, for one suffix, the snapshot artifact under
// its renamed destination filename plus the sidecar metadata under its
// original snapshot name:
//
//	boost_X_YY_ZZ-snapshot.Q      -> boost_X_YY_ZZ.Q
//	boost_X_YY_ZZ-snapshot.Q.json -> boost_X_YY_ZZ-snapshot.Q.json
func (c *Client) FetchArtifacts(id release.Identity, suffix string) error {
	log := logger.Logger()

	sourceFile := id.SnapshotName() + suffix
	destFile := id.ActualName() + suffix
	jsonFile := sourceFile + ".json"

	log.Infof("Downloading: %s to %s", sourceFile, destFile)
	log.Infof("Downloading: %s to %s", jsonFile, jsonFile)

	if err := c.DownloadFile(release.SourceRepo, sourceFile, destFile); err != nil {
		return err
	}
	return c.DownloadFile(release.SourceRepo, jsonFile, jsonFile)
}

// CopyArtifact issues a server-side copy-with-rename from the snapshot
// path to the destination release path. The jfrog CLI's exit status is
// captured and logged but does not stop the pipeline.
func (c *Client) CopyArtifact(id release.Identity, suffix string) {
	log := logger.Logger()

	src := release.SourceRepo + id.SnapshotName() + suffix
	dst := id.DestRepo() + id.ActualName() + suffix
	log.Infof("Copying: %s to %s", src, dst)

	cmd := fmt.Sprintf("jfrog rt cp --flat=true %s %s", src, dst)
	if res, err := c.Runner.Run(cmd, shell.Options{}); err != nil {
		log.Warnf("jfrog copy of %s failed (exit %d): %v", src, res.ExitCode, err)
	}
}

// UploadFile pushes a local file to the destination repository path.
// Failures are logged and skipped like CopyArtifact.
func (c *Client) UploadFile(localFile, destRepo string) {
	log := logger.Logger()
	log.Infof("Uploading: %s", localFile)

	cmd := fmt.Sprintf("jfrog rt upload %s %s", localFile, destRepo)
	if res, err := c.Runner.Run(cmd, shell.Options{}); err != nil {
		log.Warnf("jfrog upload of %s failed (exit %d): %v", localFile, res.ExitCode, err)
	}
}

// Publish copies every artifact variant to the release path and uploads
// the regenerated metadata records alongside them.
func (c *Client) Publish(id release.Identity) {
	for _, s := range release.Suffixes {
		c.CopyArtifact(id, s)
		c.UploadFile(id.ActualName()+s+".json", id.DestRepo())
	}
}
