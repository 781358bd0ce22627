package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEnv isolates a test from the caller's environment and cache
func setupEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SCHEMA_VALIDATOR_VOCABULARY_URL",
		"SCHEMA_VALIDATOR_CACHE_TTL",
		"SCHEMA_VALIDATOR_FETCH_TIMEOUT",
		"SCHEMA_VALIDATOR_REDIS_URL",
		"SCHEMA_VALIDATOR_SARIF_PATH",
		"SCHEMA_VALIDATOR_METRICS_FILE",
		"SCHEMA_VALIDATOR_DYNAMIC",
		"SCHEMA_VALIDATOR_LOG_LEVEL",
		"GITHUB_ACTIONS",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("CACHE_DIR", t.TempDir())
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := NewRootCommand(&stdout, &stderr).Execute(args)
	return stdout.String(), stderr.String(), ExitCode(err)
}

const missingStartDate = `{"@type":"MusicEvent","name":"Concert","location":{"@type":"PostalAddress","addressCountry":"United_States","addressLocality":"Austin"}}`

func TestValidate_EndToEnd(t *testing.T) {
	setupEnv(t)
	path := writeInput(t, "event.json", missingStartDate)

	stdout, _, code := execute(t, "--file", path)

	assert.Equal(t, 3, code)
	assert.Contains(t, stdout, `  [SCHEMA001] Missing required property "startdate" for type "MusicEvent" (at root)`)
	assert.Contains(t, stdout, "✓ PostalAddress passed built-in checks (at root->location)")
	assert.Contains(t, stdout, "1 problem(s): SCHEMA001=1")
}

func TestValidate_ExitCodes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{
			name:  "valid event",
			input: `{"@type":"MusicEvent","name":"Concert","startdate":"2024-06-01","location":{"@type":"PostalAddress","addressCountry":"Canada","addressLocality":"Toronto"}}`,
			want:  0,
		},
		{name: "unknown type", input: `{"@type":"FooBar"}`, want: 4},
		{name: "missing type", input: `{"name":"x"}`, want: 2},
		{name: "bad enum", input: `{"@type":"PostalAddress","addressCountry":"France","addressLocality":"Paris"}`, want: 6},
		{name: "bad format", input: `{"@type":"Person","name":"Ann","email":"not-an-email"}`, want: 5},
		{name: "top-level array", input: `[{"@type":"Person","name":"Ann"},{"@type":"Thing"}]`, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupEnv(t)
			path := writeInput(t, "input.json", tt.input)

			_, _, code := execute(t, "--file", path)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestValidate_HTMLSkipsMalformedBlock(t *testing.T) {
	setupEnv(t)

	stdout, stderr, code := execute(t, "validate", "--file", "testdata/concert.html")

	assert.Equal(t, 7, code)
	assert.Contains(t, stderr, "skipping malformed JSON-LD block")
	assert.Contains(t, stdout, "✓ MusicEvent passed built-in checks (at root)")
	assert.Contains(t, stdout, "[SCHEMA002]")
	assert.Contains(t, stdout, "[SCHEMA005]")
}

func TestValidate_NoBlocks(t *testing.T) {
	setupEnv(t)
	path := writeInput(t, "page.html", "<html><body>No data</body></html>")

	stdout, stderr, code := execute(t, "--file", path)

	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, "no JSON-LD blocks found")
	assert.Contains(t, stdout, "No problems found")
}

func TestValidate_InputErrors(t *testing.T) {
	setupEnv(t)

	_, _, code := execute(t, "--github")
	assert.Equal(t, 1, code, "missing --file")

	_, _, code = execute(t, "--file", filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, 1, code, "unreadable input")

	_, _, code = execute(t, "--file", "https://example.com", "--watch")
	assert.Equal(t, 1, code, "watching a URL")
}

func TestValidate_SARIF(t *testing.T) {
	setupEnv(t)
	path := writeInput(t, "event.json", missingStartDate)
	sarifPath := filepath.Join(t.TempDir(), "out.sarif")

	stdout, _, code := execute(t, "--file", path, "--github", "--sarif-out", sarifPath)

	assert.Equal(t, 3, code)
	assert.Equal(t, "SARIF report written to "+sarifPath+" (1 findings)\n", stdout)

	data, err := os.ReadFile(sarifPath)
	require.NoError(t, err)

	var doc struct {
		Version string `json:"version"`
		Runs    []struct {
			Results []struct {
				RuleID string `json:"ruleId"`
				Level  string `json:"level"`
			} `json:"results"`
		} `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "2.1.0", doc.Version)
	require.Len(t, doc.Runs, 1)
	require.Len(t, doc.Runs[0].Results, 1)
	assert.Equal(t, "SCHEMA001", doc.Runs[0].Results[0].RuleID)
	assert.Equal(t, "error", doc.Runs[0].Results[0].Level)
}

func TestValidate_SARIFInsideGitHubActions(t *testing.T) {
	setupEnv(t)
	t.Setenv("GITHUB_ACTIONS", "true")
	path := writeInput(t, "event.json", missingStartDate)
	sarifPath := filepath.Join(t.TempDir(), "out.sarif")

	stdout, stderr, code := execute(t, "--file", path, "--github", "--sarif-out", sarifPath)

	assert.Equal(t, 3, code)
	assert.Equal(t, "SARIF report written to "+sarifPath+" (1 findings)\n", stdout)
	assert.NotContains(t, stderr, "::error")

	stdout, stderr, code = execute(t, "--file", path, "--github", "--annotations", "--sarif-out", sarifPath)

	assert.Equal(t, 3, code)
	assert.Equal(t, "SARIF report written to "+sarifPath+" (1 findings)\n", stdout)
	assert.Contains(t, stderr, "::error file="+path+"::[SCHEMA001]")
}

func TestValidate_MetricsFile(t *testing.T) {
	setupEnv(t)
	path := writeInput(t, "event.json", missingStartDate)
	metricsPath := filepath.Join(t.TempDir(), "metrics.prom")

	_, _, code := execute(t, "--file", path, "--metrics-file", metricsPath)
	assert.Equal(t, 3, code)

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `schema_validator_findings_total{rule="SCHEMA001"} 1`)
	assert.Contains(t, string(data), "schema_validator_exit_code 3")
}

func TestValidate_URLInput(t *testing.T) {
	setupEnv(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<script type="application/ld+json">{"@type":"Person","name":"Ann"}</script>`))
	}))
	defer srv.Close()

	stdout, _, code := execute(t, "--file", srv.URL+"/people/ann")

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "✓ Person passed built-in checks (at root)")
}

func vocabularyServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	data, err := os.ReadFile("testdata/vocabulary.jsonld")
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		if status == http.StatusOK {
			w.Write(data)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestValidate_Dynamic(t *testing.T) {
	setupEnv(t)
	srv := vocabularyServer(t, http.StatusOK)
	t.Setenv("SCHEMA_VALIDATOR_VOCABULARY_URL", srv.URL)

	path := writeInput(t, "person.json", `{"@type":"Person","name":"Ann","nationality":"Atlantis"}`)
	stdout, _, code := execute(t, "--file", path, "--dynamic")

	assert.Equal(t, 20, code)
	assert.Contains(t, stdout, "[SCHEMA_CTRY]")
	assert.Contains(t, stdout, "(at root->nationality)")

	// The download was cached under CACHE_DIR
	_, err := os.Stat(filepath.Join(os.Getenv("CACHE_DIR"), "schemaorg-current-https.jsonld"))
	assert.NoError(t, err)
}

func TestValidate_DynamicVocabularyUnavailable(t *testing.T) {
	setupEnv(t)
	srv := vocabularyServer(t, http.StatusInternalServerError)
	t.Setenv("SCHEMA_VALIDATOR_VOCABULARY_URL", srv.URL)

	path := writeInput(t, "person.json", `{"@type":"Person","name":"Ann"}`)
	stdout, stderr, code := execute(t, "--file", path, "--dynamic")

	assert.Equal(t, 10, code)
	assert.Contains(t, stdout, "[SCHEMA_DYN0]")
	assert.Contains(t, stderr, "vocabulary unavailable")
}

func TestValidate_ConfigFile(t *testing.T) {
	setupEnv(t)
	srv := vocabularyServer(t, http.StatusServiceUnavailable)

	configPath := writeInput(t, "config.yaml", "dynamic: true\nvocabulary:\n  url: "+srv.URL+"\n")
	path := writeInput(t, "person.json", `{"@type":"Person","name":"Ann"}`)

	_, _, code := execute(t, "--file", path, "--config", configPath)
	assert.Equal(t, 10, code)

	_, _, code = execute(t, "--file", path, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, 1, code)
}

func TestValidate_RulesFlag(t *testing.T) {
	setupEnv(t)

	stdout, _, code := execute(t, "--rules")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "SCHEMA000")
}

func TestValidateOptions_Apply(t *testing.T) {
	setupEnv(t)
	path := writeInput(t, "event.json", missingStartDate)

	_, stderr, _ := execute(t, "--file", path, "--log-level", "debug")
	assert.Contains(t, stderr, "validated block")

	_, _, code := execute(t, "--file", path, "--log-level", "shouting")
	assert.Equal(t, 1, code)
}
