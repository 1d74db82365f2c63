package version

import "testing"

func TestFullString(t *testing.T) {
	old := Version
	defer func() { Version = old }()

	Version = "dev"
	if got := FullString(); got != "ban-comments development version" {
		t.Errorf("FullString() = %q", got)
	}

	Version = "1.2.3"
	if got := FullString(); got != "ban-comments 1.2.3" {
		t.Errorf("FullString() = %q", got)
	}
	if got := String(); got != "1.2.3" {
		t.Errorf("String() = %q", got)
	}
}

func TestInfo(t *testing.T) {
	info := Info()
	for _, key := range []string{"version", "buildDate", "gitCommit", "goVersion"} {
		if _, ok := info[key]; !ok {
			t.Errorf("Info() missing %q", key)
		}
	}
	if info["goVersion"] == "" {
		t.Error("goVersion is empty")
	}
}
