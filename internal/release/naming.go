package release

import (
	"fmt"
	"strings"
)

// Suffixes is the closed set of artifact variants a release ships in.
// Every variant is fetched, re-hashed and published; only the .tar.gz
// variant is extracted locally.
var Suffixes = []string{".7z", ".zip", ".tar.bz2", ".tar.gz"}

// SourceRepo is the repository path snapshots are promoted from.
const SourceRepo = "main/master/"

// Identity describes one release being published: an underscored version
// token (e.g. "1_76_0") plus optional beta and release-candidate numbers.
// Nil means the modifier is unset. The version token is used verbatim;
// malformed tokens pass through into the derived names uninterpreted.
type Identity struct {
	Version string
	Beta    *int
	RC      *int
}

// DottedVersion converts the underscored version token to dotted form,
// e.g. "1_76_0" -> "1.76.0".
func (id Identity) DottedVersion() string {
	return strings.ReplaceAll(id.Version, "_", ".")
}

// SnapshotName is the name the artifacts were uploaded under by the
// snapshot builder, without the variant suffix.
func (id Identity) SnapshotName() string {
	return fmt.Sprintf("boost_%s-snapshot", id.Version)
}

// ActualName is the filename the release artifacts are published under.
// Both the beta and rc modifiers apply here.
func (id Identity) ActualName() string {
	name := fmt.Sprintf("boost_%s", id.Version)
	if id.Beta != nil {
		name += fmt.Sprintf("_b%d", *id.Beta)
	}
	if id.RC != nil {
		name += fmt.Sprintf("_rc%d", *id.RC)
	}
	return name
}

// HostedArchiveName is the directory name the unpacked release is served
// under. An rc is never hosted separately, so only the beta modifier
// applies.
func (id Identity) HostedArchiveName() string {
	if id.Beta != nil {
		return fmt.Sprintf("boost_%s_beta%d", id.Version, *id.Beta)
	}
	return fmt.Sprintf("boost_%s", id.Version)
}

// UnzippedArchiveName is the top-level directory inside the archive
// itself, which the snapshot builder names after the plain version.
func (id Identity) UnzippedArchiveName() string {
	return fmt.Sprintf("boost_%s", id.Version)
}

// DestRepo is the repository path the renamed artifacts are copied to.
func (id Identity) DestRepo() string {
	if id.Beta != nil {
		return fmt.Sprintf("main/beta/%s.beta%d/source/", id.DottedVersion(), *id.Beta)
	}
	return fmt.Sprintf("main/release/%s/source/", id.DottedVersion())
}
