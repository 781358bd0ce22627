package vocabulary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nigelhorne/schema-validator/pkg/observability"
	"github.com/nigelhorne/schema-validator/pkg/schema"
	"github.com/nigelhorne/schema-validator/pkg/validation"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type vocabServer struct {
	*httptest.Server
	hits   atomic.Int32
	status int
	body   []byte
	delay  time.Duration
}

func newVocabServer(t *testing.T, status int, body []byte) *vocabServer {
	t.Helper()
	s := &vocabServer{status: status, body: body}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		if s.delay > 0 {
			time.Sleep(s.delay)
		}
		w.WriteHeader(s.status)
		w.Write(s.body)
	}))
	t.Cleanup(s.Close)
	return s
}

func fixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/vocabulary.jsonld")
	require.NoError(t, err)
	return data
}

func newTestLoader(url string, store Store, metrics *observability.Metrics) *Loader {
	config := DefaultConfig()
	config.URL = url
	config.FetchTimeout = 2 * time.Second
	l := NewLoader(config, store, nil, metrics)
	l.now = func() time.Time { return fixedNow }
	return l
}

func TestLoader_FreshCacheSkipsNetwork(t *testing.T) {
	srv := newVocabServer(t, http.StatusOK, fixture(t))
	store := NewFileStore(t.TempDir())
	require.NoError(t, store.Put(context.Background(), fixture(t), fixedNow.Add(-100*time.Second)))

	loader := newTestLoader(srv.URL, store, nil)
	vocab, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, vocab.Classes, 2)
	assert.Equal(t, int32(0), srv.hits.Load())
}

func TestLoader_ExpiredCacheRefetches(t *testing.T) {
	srv := newVocabServer(t, http.StatusOK, fixture(t))
	store := NewFileStore(t.TempDir())
	require.NoError(t, store.Put(context.Background(), []byte(`{"@graph": []}`), fixedNow.Add(-90000*time.Second)))

	loader := newTestLoader(srv.URL, store, nil)
	vocab, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, vocab.Classes, 2)
	assert.Equal(t, int32(1), srv.hits.Load())

	entry, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fixture(t), entry.Data)
	assert.WithinDuration(t, fixedNow, entry.FetchedAt, time.Second)
}

func TestLoader_NoCacheDownloadsAndPersists(t *testing.T) {
	srv := newVocabServer(t, http.StatusOK, fixture(t))
	dir := t.TempDir()
	store := NewFileStore(dir + "/nested/cache")

	loader := newTestLoader(srv.URL, store, nil)
	_, err := loader.Load(context.Background())
	require.NoError(t, err)

	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestLoader_MemoizesWithinProcess(t *testing.T) {
	srv := newVocabServer(t, http.StatusOK, fixture(t))
	loader := newTestLoader(srv.URL, nil, nil)

	first, err := loader.Load(context.Background())
	require.NoError(t, err)
	second, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), srv.hits.Load())
}

func TestLoader_ExpiredCopyNotUsedOnFailure(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   []byte
	}{
		{"server error", http.StatusInternalServerError, []byte("oops")},
		{"not found", http.StatusNotFound, nil},
		{"malformed download", http.StatusOK, []byte("<html>maintenance</html>")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newVocabServer(t, tt.status, tt.body)
			store := NewFileStore(t.TempDir())
			expired := fixedNow.Add(-30 * 24 * time.Hour)
			require.NoError(t, store.Put(context.Background(), fixture(t), expired))

			registry := prometheus.NewRegistry()
			metrics := observability.NewMetrics(registry)

			loader := newTestLoader(srv.URL, store, metrics)
			vocab, err := loader.Load(context.Background())
			assert.ErrorIs(t, err, ErrVocabularyUnavailable)
			assert.Nil(t, vocab)

			// The expired copy is left untouched
			entry, err := store.Get(context.Background())
			require.NoError(t, err)
			assert.Equal(t, fixture(t), entry.Data)
			assert.WithinDuration(t, expired, entry.FetchedAt, time.Second)

			assert.Equal(t, 1.0, testutil.ToFloat64(
				metrics.VocabularyLoadsTotal.WithLabelValues(observability.SourceFailed)))
			assert.Equal(t, 0.0, testutil.ToFloat64(
				metrics.VocabularyLoadsTotal.WithLabelValues(observability.SourceCache)))
		})
	}
}

func TestLoader_FailedRefreshLeavesBuiltinTypesUndefined(t *testing.T) {
	srv := newVocabServer(t, http.StatusInternalServerError, nil)
	store := NewFileStore(t.TempDir())
	require.NoError(t, store.Put(context.Background(), fixture(t), fixedNow.Add(-90000*time.Second)))

	loader := newTestLoader(srv.URL, store, nil)
	registry := schema.New()
	err := loader.LoadInto(context.Background(), registry)
	require.ErrorIs(t, err, ErrVocabularyUnavailable)
	assert.Equal(t, int32(1), srv.hits.Load())

	classes, properties := registry.DynamicSize()
	assert.Zero(t, classes)
	assert.Zero(t, properties)

	vctx := validation.NewContext(registry, true)
	validation.NewValidator(nil, nil).Validate(map[string]any{
		"@type":     "MusicEvent",
		"name":      "Concert",
		"startDate": "2024-06-01",
		"location": map[string]any{
			"@type": "Place",
			"name":  "Massey Hall",
		},
	}, vctx, "root")

	var found bool
	for _, f := range vctx.Findings() {
		if f.RuleID == validation.RuleNoDynamicDefinition && f.Path == "root" {
			assert.Equal(t, "MusicEvent", f.Type)
			found = true
		}
	}
	assert.True(t, found, "expected %s for MusicEvent, got %+v",
		validation.RuleNoDynamicDefinition, vctx.Findings())
}

func TestLoader_Unavailable(t *testing.T) {
	srv := newVocabServer(t, http.StatusServiceUnavailable, nil)

	loader := newTestLoader(srv.URL, NewFileStore(t.TempDir()), nil)
	_, err := loader.Load(context.Background())
	assert.ErrorIs(t, err, ErrVocabularyUnavailable)
}

func TestLoader_UnreadableFreshCache(t *testing.T) {
	srv := newVocabServer(t, http.StatusOK, fixture(t))
	store := NewFileStore(t.TempDir())
	require.NoError(t, store.Put(context.Background(), []byte("garbage"), fixedNow.Add(-time.Minute)))

	loader := newTestLoader(srv.URL, store, nil)
	vocab, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, vocab.Classes, 2)
	assert.Equal(t, int32(1), srv.hits.Load())
}

func TestLoader_FetchTimeout(t *testing.T) {
	srv := newVocabServer(t, http.StatusOK, fixture(t))
	srv.delay = 500 * time.Millisecond

	config := DefaultConfig()
	config.URL = srv.URL
	config.FetchTimeout = 50 * time.Millisecond
	loader := NewLoader(config, nil, nil, nil)

	_, err := loader.Load(context.Background())
	assert.ErrorIs(t, err, ErrVocabularyUnavailable)
}

func TestLoader_LoadInto(t *testing.T) {
	srv := newVocabServer(t, http.StatusOK, fixture(t))
	loader := newTestLoader(srv.URL, nil, nil)
	registry := schema.New()

	require.NoError(t, loader.LoadInto(context.Background(), registry))

	_, ok := registry.LookupDynamicClass("MusicEvent")
	assert.True(t, ok)
	prop, ok := registry.LookupDynamicProperty("startDate")
	require.True(t, ok)
	assert.Equal(t, []string{"Date", "DateTime"}, prop.RangeIncludes)
}

func TestNewLoader_Defaults(t *testing.T) {
	loader := NewLoader(&Config{}, nil, nil, nil)
	assert.Equal(t, DefaultURL, loader.config.URL)
	assert.Equal(t, DefaultTTL, loader.config.TTL)
	assert.Equal(t, DefaultFetchTimeout, loader.config.FetchTimeout)
	assert.Equal(t, DefaultMemoSize, loader.config.MemoSize)
}
