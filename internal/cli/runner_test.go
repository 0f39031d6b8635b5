package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/Makepad-fr/atlas/internal/model"
)

const fixture = `[
  {"name":{"common":"France"},"population":67391582,"region":"Europe","capital":["Paris"],"flags":{"svg":"https://flagcdn.com/fr.svg"},"cca2":"FR"},
  {"name":{"common":"United Kingdom"},"population":67215293,"region":"Europe","capital":["London"],"flags":{"svg":"https://flagcdn.com/gb.svg"},"cca2":"GB"},
  {"name":{"common":"United Arab Emirates"},"population":9890400,"region":"Asia","capital":["Abu Dhabi"],"flags":{"svg":"https://flagcdn.com/ae.svg"},"cca2":"AE"},
  {"name":{"common":"Bouvet Island"},"population":0,"region":"Antarctic","flags":{"svg":"https://flagcdn.com/bv.svg"},"cca2":"BV"}
]`

type result struct {
	code   int
	stdout string
	stderr string
}

func execute(t *testing.T, args ...string) result {
	t.Helper()
	return executeEnv(t, nil, args...)
}

// executeEnv runs the CLI against the fixture with only env set among ATLAS_* variables.
func executeEnv(t *testing.T, env map[string]string, args ...string) result {
	t.Helper()
	for _, k := range []string{"ATLAS_API_URL", "ATLAS_TIMEOUT", "ATLAS_SOURCE", "ATLAS_THEME", "ATLAS_LOCALE", "ATLAS_LOG_FILE", "ATLAS_LOG_LEVEL"} {
		t.Setenv(k, env[k])
	}
	dir := t.TempDir()
	src := filepath.Join(dir, "all.json")
	require.NoError(t, os.WriteFile(src, []byte(fixture), 0o644))

	base := []string{"--no-color", "--locale", "en-US"}
	if !slices.Contains(args, "--config") {
		base = append(base, "--config", filepath.Join(dir, "none.yaml"))
	}
	if !slices.Contains(args, "--source") {
		base = append(base, "--source", src)
	}
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), append(args, base...), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestList_All(t *testing.T) {
	r := execute(t, "list")

	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Showing 4  of 4")
	for _, want := range []string{"France", "United Kingdom", "United Arab Emirates", "Bouvet Island", "67,391,582", "N/A"} {
		assert.Contains(t, r.stdout, want)
	}
}

func TestList_SearchAndRegion(t *testing.T) {
	r := execute(t, "list", "--search", "united", "--region", "Asia")

	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "United Arab Emirates")
	assert.NotContains(t, r.stdout, "United Kingdom")
	assert.NotContains(t, r.stdout, "France")
}

func TestList_NoResults(t *testing.T) {
	r := execute(t, "list", "-s", "atlantis")

	assert.Equal(t, 0, r.code)
	assert.Contains(t, r.stdout, "No countries found")
	assert.Empty(t, r.stderr)
}

func TestList_UnknownRegionIsUsageError(t *testing.T) {
	r := execute(t, "list", "--region", "europe")

	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, `unknown region "europe"`)
}

func TestList_FailedLoad(t *testing.T) {
	r := execute(t, "list", "--source", filepath.Join(t.TempDir(), "missing.json"))

	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stdout, "No countries found")
	assert.Contains(t, r.stdout, "data unavailable")
	assert.Contains(t, r.stderr, "data unavailable")
}

func TestUsageErrors(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
		args []string
		want string
	}{
		{"unknown subcommand", nil, []string{"bogus"}, `unknown command "bogus"`},
		{"unknown flag", nil, []string{"list", "--nope"}, "unknown flag"},
		{"bad theme", nil, []string{"regions", "--theme", "sepia"}, "invalid ui.theme"},
		{"bad env theme", map[string]string{"ATLAS_THEME": "sepia"}, []string{"regions"}, "invalid ui.theme"},
		{"bad env timeout", map[string]string{"ATLAS_TIMEOUT": "soon"}, []string{"regions"}, "invalid api.timeout"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := executeEnv(t, tc.env, tc.args...)
			assert.Equal(t, 2, r.code)
			assert.Contains(t, r.stderr, tc.want)
		})
	}
}

func TestFlagOverridesBadEnvTheme(t *testing.T) {
	r := executeEnv(t, map[string]string{"ATLAS_THEME": "sepia"}, "regions", "--theme", "dark")

	assert.Equal(t, 0, r.code, r.stderr)
	assert.Empty(t, r.stderr)
}

func TestFlagOverridesBadFileTheme(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("ui:\n  theme: sepia\n"), 0o644))

	r := execute(t, "regions", "--theme", "light", "--config", cfgPath)
	assert.Equal(t, 0, r.code, r.stderr)
}

func TestSetup_VerboseViewerKeepsLogsOffTerminal(t *testing.T) {
	for _, k := range []string{"ATLAS_THEME", "ATLAS_TIMEOUT", "ATLAS_LOG_FILE", "ATLAS_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	opts := Options{ConfigPath: filepath.Join(t.TempDir(), "none.yaml"), Verbose: true, NoColor: true}

	viewer := &app{opts: opts}
	require.NoError(t, viewer.setup(true))
	assert.False(t, viewer.log.Core().Enabled(zapcore.ErrorLevel))

	list := &app{opts: opts}
	require.NoError(t, list.setup(false))
	assert.True(t, list.log.Core().Enabled(zapcore.DebugLevel))
}

func TestRegions(t *testing.T) {
	r := execute(t, "regions")

	require.Equal(t, 0, r.code)
	for _, want := range []string{"all", "Filter by Region", "Africa", "Americas", "Asia", "Europe", "Oceania"} {
		assert.Contains(t, r.stdout, want)
	}
}

func TestExport(t *testing.T) {
	out := filepath.Join(t.TempDir(), "europe.json")

	r := execute(t, "export", "--region", "Europe", "--out", out)

	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "exported 2 of 4 countries")

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	var got []model.Country
	require.NoError(t, json.Unmarshal(b, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "fr", got[0].Code)
	assert.Equal(t, "London", got[1].Capital)
}

func TestExport_FailedLoadWritesNothing(t *testing.T) {
	out := filepath.Join(t.TempDir(), "x.json")

	r := execute(t, "export", "--out", out, "--source", filepath.Join(t.TempDir(), "missing.json"))

	assert.Equal(t, 1, r.code)
	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}
