package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/boostorg/release-publisher/internal/release"
	"github.com/boostorg/release-publisher/internal/utils/logger"
	"github.com/boostorg/release-publisher/internal/utils/shell"
)

// scratchDir is the subdirectory of the archive root used for extraction.
// It is wiped at the start of every run.
const scratchDir = "tmp"

// Materializer unpacks the .tar.gz variant of a release under the archive
// root, replacing any previous extraction of the same hosted name. The
// sequence is not atomic: an external reader can observe a missing or
// partially populated directory mid-operation.
type Materializer struct {
	ArchiveDir string
	Runner     shell.Runner
}

// NewMaterializer returns a Materializer rooted at dir.
func NewMaterializer(dir string, runner shell.Runner) *Materializer {
	return &Materializer{ArchiveDir: dir, Runner: runner}
}

// Materialize extracts <actualName>.tar.gz from the working directory into
// <ArchiveDir>/<hostedArchiveName>, fully replacing whatever was there.
func (m *Materializer) Materialize(id release.Identity) error {
	log := logger.Logger()

	archiveName := id.ActualName() + ".tar.gz"
	scratch := filepath.Join(m.ArchiveDir, scratchDir)
	hosted := filepath.Join(m.ArchiveDir, id.HostedArchiveName())

	if err := os.MkdirAll(m.ArchiveDir, 0755); err != nil {
		return fmt.Errorf("failed to create archive dir %s: %w", m.ArchiveDir, err)
	}

	// Idempotent reset of the scratch area.
	if err := os.RemoveAll(scratch); err != nil {
		return fmt.Errorf("failed to reset scratch dir %s: %w", scratch, err)
	}
	if err := os.MkdirAll(scratch, 0755); err != nil {
		return fmt.Errorf("failed to create scratch dir %s: %w", scratch, err)
	}

	if err := copyFile(archiveName, filepath.Join(scratch, archiveName)); err != nil {
		return err
	}

	log.Infof("Extracting: %s", archiveName)
	if res, err := m.Runner.Run(fmt.Sprintf("tar -xf %s", archiveName), shell.Options{Dir: scratch}); err != nil {
		log.Warnf("tar extraction of %s failed (exit %d): %v", archiveName, res.ExitCode, err)
	}

	// Replace, not merge: a previous extraction under the hosted name is
	// removed entirely before the new tree moves into place.
	if err := os.RemoveAll(hosted); err != nil {
		return fmt.Errorf("failed to remove previous %s: %w", hosted, err)
	}
	extracted := filepath.Join(scratch, id.UnzippedArchiveName())
	if err := os.Rename(extracted, hosted); err != nil {
		return fmt.Errorf("failed to move %s to %s: %w", extracted, hosted, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	return nil
}
