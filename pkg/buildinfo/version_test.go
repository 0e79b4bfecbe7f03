package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func withBuildInfo(t *testing.T, bi *debug.BuildInfo, ok bool) {
	t.Helper()
	oldRead, oldV, oldC, oldD := readBuildInfo, Version, Commit, Date
	t.Cleanup(func() {
		readBuildInfo, Version, Commit, Date = oldRead, oldV, oldC, oldD
	})
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, ok }
	Version, Commit, Date = "dev", "none", "unknown"
}

func TestResolve(t *testing.T) {
	withBuildInfo(t, &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2025-01-02T03:04:05Z"},
		},
	}, true)

	Resolve()

	if Version != "v0.3.0" || Commit != "abc123" || Date != "2025-01-02T03:04:05Z" {
		t.Errorf("Resolve() = %s %s %s", Version, Commit, Date)
	}
}

func TestResolve_KeepsLdflags(t *testing.T) {
	withBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "v0.3.0"}}, true)
	Version = "v9.9.9"

	Resolve()

	if Version != "v9.9.9" {
		t.Errorf("Version = %q, want ldflags value", Version)
	}
}

func TestResolve_Devel(t *testing.T) {
	withBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, true)
	Resolve()
	if Version != "dev" {
		t.Errorf("Version = %q, want dev", Version)
	}

	withBuildInfo(t, nil, false)
	Resolve()
	if Version != "dev" {
		t.Errorf("Version = %q, want dev", Version)
	}
}

func TestTemplate(t *testing.T) {
	withBuildInfo(t, nil, false)
	Version, Commit = "v1.0.0", "deadbeef"

	if got := Template(); !strings.Contains(got, "version v1.0.0") || !strings.Contains(got, "commit: deadbeef") {
		t.Errorf("Template() = %q", got)
	}
	if got := String(); !strings.HasPrefix(got, "version: v1.0.0\n") {
		t.Errorf("String() = %q", got)
	}
}
