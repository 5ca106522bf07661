package release

import "testing"

func intp(n int) *int { return &n }

func TestFinalReleaseNames(t *testing.T) {
	id := Identity{Version: "1_76_0"}

	if got := id.ActualName(); got != "boost_1_76_0" {
		t.Errorf("ActualName = %q, want boost_1_76_0", got)
	}
	if got := id.HostedArchiveName(); got != "boost_1_76_0" {
		t.Errorf("HostedArchiveName = %q, want boost_1_76_0", got)
	}
	if got := id.UnzippedArchiveName(); got != "boost_1_76_0" {
		t.Errorf("UnzippedArchiveName = %q, want boost_1_76_0", got)
	}
	if got := id.DestRepo(); got != "main/release/1.76.0/source/" {
		t.Errorf("DestRepo = %q, want main/release/1.76.0/source/", got)
	}
	if got := id.SnapshotName(); got != "boost_1_76_0-snapshot" {
		t.Errorf("SnapshotName = %q, want boost_1_76_0-snapshot", got)
	}
}

func TestBetaNames(t *testing.T) {
	id := Identity{Version: "1_76_0", Beta: intp(2)}

	if got := id.ActualName(); got != "boost_1_76_0_b2" {
		t.Errorf("ActualName = %q, want boost_1_76_0_b2", got)
	}
	if got := id.HostedArchiveName(); got != "boost_1_76_0_beta2" {
		t.Errorf("HostedArchiveName = %q, want boost_1_76_0_beta2", got)
	}
	// The archive's internal top-level directory stays the plain version.
	if got := id.UnzippedArchiveName(); got != "boost_1_76_0" {
		t.Errorf("UnzippedArchiveName = %q, want boost_1_76_0", got)
	}
	if got := id.DestRepo(); got != "main/beta/1.76.0.beta2/source/" {
		t.Errorf("DestRepo = %q, want main/beta/1.76.0.beta2/source/", got)
	}
}

func TestReleaseCandidateOnlyAffectsActualName(t *testing.T) {
	id := Identity{Version: "1_76_0", Beta: intp(4), RC: intp(2)}

	if got := id.ActualName(); got != "boost_1_76_0_b4_rc2" {
		t.Errorf("ActualName = %q, want boost_1_76_0_b4_rc2", got)
	}
	if got := id.HostedArchiveName(); got != "boost_1_76_0_beta4" {
		t.Errorf("HostedArchiveName = %q, want boost_1_76_0_beta4", got)
	}
	if got := id.DestRepo(); got != "main/beta/1.76.0.beta4/source/" {
		t.Errorf("DestRepo = %q, want main/beta/1.76.0.beta4/source/", got)
	}

	rcOnly := Identity{Version: "1_76_0", RC: intp(1)}
	if got := rcOnly.ActualName(); got != "boost_1_76_0_rc1" {
		t.Errorf("ActualName = %q, want boost_1_76_0_rc1", got)
	}
	if got := rcOnly.HostedArchiveName(); got != "boost_1_76_0" {
		t.Errorf("HostedArchiveName = %q, want boost_1_76_0", got)
	}
	if got := rcOnly.DestRepo(); got != "main/release/1.76.0/source/" {
		t.Errorf("DestRepo = %q, want main/release/1.76.0/source/", got)
	}
}

func TestVersionTokenPassedThroughUninterpreted(t *testing.T) {
	// Garbage in, garbage out: no validation of the version token.
	id := Identity{Version: "not-a-version"}
	if got := id.ActualName(); got != "boost_not-a-version" {
		t.Errorf("ActualName = %q, want boost_not-a-version", got)
	}
}
