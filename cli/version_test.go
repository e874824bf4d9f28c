package cli

import (
	"runtime/debug"
	"testing"
)

func TestResolveVersionInfo(t *testing.T) {
	tests := []struct {
		name          string
		v, c, d       string
		moduleVersion string
		settings      map[string]string
		wantV         string
		wantC         string
		wantD         string
	}{
		{
			name: "ldflags win",
			v:    "1.2.0", c: "abc123", d: "2026-01-01",
			moduleVersion: "v9.9.9",
			settings:      map[string]string{"vcs.revision": "ffffffffffffffff", "vcs.time": "1999-01-01"},
			wantV:         "1.2.0", wantC: "abc123", wantD: "2026-01-01",
		},
		{
			name: "module version fills dev",
			v:    "dev", c: "none", d: "unknown",
			moduleVersion: "v0.3.1",
			wantV:         "v0.3.1", wantC: "none", wantD: "unknown",
		},
		{
			name: "devel placeholder ignored",
			v:    "dev", c: "none", d: "unknown",
			moduleVersion: "(devel)",
			wantV:         "dev", wantC: "none", wantD: "unknown",
		},
		{
			name: "vcs revision truncated to 12",
			v:    "dev", c: "none", d: "unknown",
			settings: map[string]string{"vcs.revision": "0123456789abcdef"},
			wantV:    "dev", wantC: "0123456789ab", wantD: "unknown",
		},
		{
			name: "vcs time fills date",
			v:    "dev", c: "none", d: "unknown",
			settings: map[string]string{"vcs.time": "2026-08-01T12:00:00Z"},
			wantV:    "dev", wantC: "none", wantD: "2026-08-01T12:00:00Z",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, c, d := resolveVersionInfo(tc.v, tc.c, tc.d, tc.moduleVersion, tc.settings)
			if v != tc.wantV || c != tc.wantC || d != tc.wantD {
				t.Fatalf("got (%q, %q, %q), want (%q, %q, %q)", v, c, d, tc.wantV, tc.wantC, tc.wantD)
			}
		})
	}
}

func TestBuildSettingsMap(t *testing.T) {
	in := []debug.BuildSetting{
		{Key: "vcs.revision", Value: "abc"},
		{Key: "vcs.time", Value: "2026-08-01"},
	}
	got := buildSettingsMap(in)
	if got["vcs.revision"] != "abc" || got["vcs.time"] != "2026-08-01" {
		t.Fatalf("unexpected map: %#v", got)
	}
}
