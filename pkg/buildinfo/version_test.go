package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	Version, Commit, Date = "v1.2.3", "abc123", "2025-01-01"
	defer func() { Version, Commit, Date = "dev", "none", "unknown" }()

	want := "version: v1.2.3\ncommit: abc123\nbuilt: 2025-01-01"
	if got := String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := Template(); !strings.HasPrefix(got, "{{.Name}} version v1.2.3") {
		t.Errorf("Template() = %q", got)
	}
	if got := UserAgent(); got != "railing/v1.2.3" {
		t.Errorf("UserAgent() = %q, want %q", got, "railing/v1.2.3")
	}
}
