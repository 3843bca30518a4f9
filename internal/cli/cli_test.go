package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsnovaweb/ServerSensei/internal/config"
	"github.com/jsnovaweb/ServerSensei/internal/errors"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", dir)
	return dir
}

func TestConnFlags_Validate(t *testing.T) {
	assert.NoError(t, ConnFlags{}.Validate())
	assert.NoError(t, ConnFlags{Target: "prod"}.Validate())
	assert.NoError(t, ConnFlags{Host: "user@box"}.Validate())

	err := ConnFlags{Target: "prod", Host: "user@box"}.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestOpenSession_DefaultsToLocal(t *testing.T) {
	isolate(t)

	s, err := openSession(ConnFlags{})
	require.NoError(t, err)
	defer s.Close()

	assert.True(t, s.target.IsLocal())
	assert.NotNil(t, s.local)
	assert.Nil(t, s.exec)
}

func TestOpenSession_UnknownTarget(t *testing.T) {
	isolate(t)

	_, err := openSession(ConnFlags{Target: "ghost"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestSession_SnapshotFilePrecedence(t *testing.T) {
	s := &session{cfg: &config.Config{SnapshotFile: "from_config.json"}}

	assert.Equal(t, "explicit.json", s.snapshotFile("explicit.json"))
	assert.Equal(t, "from_config.json", s.snapshotFile(""))

	s.cfg.SnapshotFile = ""
	assert.Equal(t, "system_snapshot.json", s.snapshotFile(""))
}

func TestInitCommand(t *testing.T) {
	dir := isolate(t)

	require.NoError(t, runInit())

	data, err := os.ReadFile(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "version: 1")
	assert.Contains(t, string(data), "snapshot_file: system_snapshot.json")

	// Written config must load cleanly.
	cfg, err := config.LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, "system_snapshot.json", cfg.SnapshotFile)
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	isolate(t)

	require.NoError(t, runInit())
	err := runInit()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))

	initForce = true
	defer func() { initForce = false }()
	assert.NoError(t, runInit())
}

func TestSetVersionInfo(t *testing.T) {
	defer SetVersionInfo("dev", "none", "unknown")

	SetVersionInfo("1.2.3", "abc123", "2026-01-01")
	assert.Equal(t, "1.2.3", GetVersion())
	assert.Equal(t, "v1.2.3", formatVersion(GetVersion()))
}

func TestFormatVersion(t *testing.T) {
	assert.Equal(t, "dev", formatVersion("dev"))
	assert.Equal(t, "v1.2.3", formatVersion("1.2.3"))
	assert.Equal(t, "v1.2.3", formatVersion("v1.2.3"))
	assert.Equal(t, "", formatVersion(""))
}

func TestWriteJSONSuccess(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONSuccess(&buf, map[string]int{"pid": 42}))

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Nil(t, env.Error)
}

func TestWriteJSONFromError_Structured(t *testing.T) {
	var buf bytes.Buffer
	err := errors.New(errors.ErrAuth, "Authentication failed", "Check your key")
	require.NoError(t, WriteJSONFromError(&buf, err))

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, errors.ErrAuth, env.Error.Code)
	assert.Equal(t, "Authentication failed", env.Error.Message)
	assert.Equal(t, "Check your key", env.Error.Suggestion)
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"report", "status", "security", "kill", "init", "version", "completion"} {
		assert.True(t, names[want], "missing command %q", want)
	}
}
