package publish

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/boostorg/release-publisher/internal/archive"
	"github.com/boostorg/release-publisher/internal/artifactory"
	"github.com/boostorg/release-publisher/internal/mirror"
	"github.com/boostorg/release-publisher/internal/release"
	"github.com/boostorg/release-publisher/internal/utils/logger"
	"github.com/boostorg/release-publisher/internal/utils/shell"
)

// Options selects the release to publish and how the run behaves.
type Options struct {
	Version  string
	Beta     *int
	RC       *int
	Progress bool
	DryRun   bool
}

// Pipeline wires the stages together. Collaborators are fields so tests
// can inject a fake runner and a local repository server.
type Pipeline struct {
	Options Options
	Client  *artifactory.Client
	Runner  shell.Runner
	Home    string
}

// New builds a Pipeline against the real artifact repository, the host
// shell and the invoking user's home directory.
func New(opts Options) (*Pipeline, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home dir: %w", err)
	}
	runner := shell.NewHostRunner()
	client := artifactory.NewClient(runner)
	client.Progress = opts.Progress
	return &Pipeline{
		Options: opts,
		Client:  client,
		Runner:  runner,
		Home:    home,
	}, nil
}

// Run executes the publishing stages strictly in order: fetch the snapshot
// artifacts, regenerate their metadata, materialize the archive tree
// locally, then (unless dry-run) promote the artifacts in the repository
// and mirror the tree to the cloud buckets. Each stage consumes the files
// the previous one left on disk.
func (p *Pipeline) Run() error {
	log := logger.Logger().With("run", uuid.NewString())
	opts := p.Options

	id := release.Identity{Version: opts.Version, Beta: opts.Beta, RC: opts.RC}

	log.Infof("Creating release files named '%s'", id.ActualName())
	if opts.DryRun {
		log.Infof("## Dry run; not uploading files to JFrog")
	}

	// Download every artifact variant plus its sidecar metadata.
	log.Infof("Downloading from: %s", release.SourceRepo)
	for _, s := range release.Suffixes {
		if err := p.Client.FetchArtifacts(id, s); err != nil {
			return err
		}
	}

	// Regenerate the metadata records under the renamed filenames.
	for _, s := range release.Suffixes {
		fileName := id.ActualName() + s
		jsonFileName := fileName + ".json"
		snapshotJSON := id.SnapshotName() + s + ".json"

		sha, err := release.FileSHA256(fileName)
		if err != nil {
			return err
		}
		rec, err := release.Regenerate(snapshotJSON, fileName, sha)
		if err != nil {
			return err
		}
		log.Infof("Writing JSON to: %s", jsonFileName)
		if err := rec.WriteFile(jsonFileName); err != nil {
			return err
		}
	}

	archiveDir := filepath.Join(p.Home, "archives")
	mat := archive.NewMaterializer(archiveDir, p.Runner)
	if err := mat.Materialize(id); err != nil {
		return err
	}

	log.Infof("Uploading to: %s", id.DestRepo())
	if !opts.DryRun {
		p.Client.Publish(id)
	}

	cfg, err := mirror.LoadConfig(filepath.Join(p.Home, ".config", "release-publisher", "mirror.yaml"))
	if err != nil {
		return err
	}
	mir := &mirror.Mirror{
		Config:          cfg,
		Runner:          p.Runner,
		ArchiveDir:      archiveDir,
		RcloneConfPath:  filepath.Join(p.Home, ".config", "rclone", "rclone.conf"),
		CredentialsFile: filepath.Join(p.Home, ".aws", "credentials"),
	}
	if err := mir.WriteRcloneConfig(); err != nil {
		return err
	}
	if mir.Preflight() && !opts.DryRun {
		mir.Sync(id.HostedArchiveName())
	}

	return nil
}

// Run publishes one release with default wiring.
func Run(opts Options) error {
	p, err := New(opts)
	if err != nil {
		return err
	}
	return p.Run()
}
