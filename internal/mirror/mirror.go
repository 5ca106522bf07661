package mirror

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/boostorg/release-publisher/internal/utils/logger"
	"github.com/boostorg/release-publisher/internal/utils/shell"
)

// rcloneConfig is the fixed single-remote template. Credentials come from
// the environment (AWS_PROFILE is set per sync invocation).
const rcloneConfig = `[remote1]
type = s3
provider = AWS
env_auth = true
region = us-east-2
`

// Mirror replicates an extracted release tree to every configured bucket
// by shelling out to rclone once per credential profile.
type Mirror struct {
	Config          Config
	Runner          shell.Runner
	ArchiveDir      string
	RcloneConfPath  string
	CredentialsFile string
}

// WriteRcloneConfig writes the fixed remote template, creating the config
// directory if needed. This runs unconditionally, before the dry-run and
// precondition gates.
func (m *Mirror) WriteRcloneConfig() error {
	dir := filepath.Dir(m.RcloneConfPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	if err := os.WriteFile(m.RcloneConfPath, []byte(rcloneConfig), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", m.RcloneConfPath, err)
	}
	return nil
}

// Preflight checks that rclone is installed and AWS credentials exist.
// On failure it prints remediation instructions and reports false; the
// caller skips mirroring but the rest of the pipeline has already run.
func (m *Mirror) Preflight() bool {
	log := logger.Logger()

	if !m.Runner.CommandExists("rclone") {
		log.Warnf("rclone is not installed. Instructions:")
		log.Warnf("wget https://downloads.rclone.org/v1.64.0/rclone-v1.64.0-linux-amd64.deb; dpkg -i rclone-v1.64.0-linux-amd64.deb")
		return false
	}
	if _, err := os.Stat(m.CredentialsFile); err != nil {
		log.Warnf("AWS credentials are missing. Please add the file %s .", m.CredentialsFile)
		return false
	}
	return true
}

// Sync pushes the hosted archive tree to each profile's bucket. Transfers
// within one rclone run are parallel and checksummed; profiles themselves
// run sequentially and independently, so one failure never blocks the next.
func (m *Mirror) Sync(hostedArchiveName string) {
	log := logger.Logger()
	localPath := filepath.Join(m.ArchiveDir, hostedArchiveName) + "/"

	for _, p := range m.Config.Profiles {
		remotePath := fmt.Sprintf("remote1:%s/archives/%s/", p.Bucket, hostedArchiveName)
		log.Infof("Syncing %s to %s", localPath, remotePath)

		cmd := fmt.Sprintf("rclone sync --transfers 16 --checksum %s %s", localPath, remotePath)
		opts := shell.Options{Env: []string{"AWS_PROFILE=" + p.Name}}
		if res, err := m.Runner.Run(cmd, opts); err != nil {
			log.Warnf("rclone sync to %s failed (exit %d): %v", p.Bucket, res.ExitCode, err)
		}
	}
}
