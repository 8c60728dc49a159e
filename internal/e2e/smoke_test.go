package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	require.NoError(t, writeRosterFixture(home))
	eventsPath, err := writeEventsFixture(t.TempDir())
	require.NoError(t, err)

	stdout, stderr, err := runIdlereport(t, binaryPath, home,
		"check", "--date", "2026-03-09", "--events", eventsPath)
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "date: 2026-03-09")
	assert.Contains(t, stdout, "dropped records: 0")

	stdout, stderr, err = runIdlereport(t, binaryPath, home,
		"report", "--dry-run", "--date", "2026-03-09", "--events", eventsPath)
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "*Daily Idle Report for Monday, March 09*")
	assert.Contains(t, stdout, "*Manager m-1*")
	assert.Contains(t, stdout, "a-1")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "idlereport-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/idlereport")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build idlereport binary: %s", string(output))
	return binaryPath
}

func runIdlereport(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func writeRosterFixture(home string) error {
	configDir := filepath.Join(home, ".idlereport")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	roster := `version = 1

[[managers]]
id = "m-1"
name = "Day shift"
associates = ["a-1"]
`
	return os.WriteFile(filepath.Join(configDir, "roster.toml"), []byte(roster), 0o600)
}

func writeEventsFixture(dir string) (string, error) {
	events := "associate_id,timestamp,event_type\n" +
		"a-1,2026-03-09 09:00:00,IDLE_START\n" +
		"a-1,2026-03-09 09:30:00,IDLE_END\n"

	path := filepath.Join(dir, "events.csv")
	return path, os.WriteFile(path, []byte(events), 0o600)
}
