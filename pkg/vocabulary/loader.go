package vocabulary

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/nigelhorne/schema-validator/pkg/observability"
	"github.com/nigelhorne/schema-validator/pkg/schema"
)

// Loader obtains the vocabulary from memory, a fresh store copy or the
// network, in that order.
type Loader struct {
	config  *Config
	store   Store
	fetcher *Fetcher
	memo    *lru.LRU[string, *Vocabulary]
	group   singleflight.Group
	logger  logrus.FieldLogger
	metrics *observability.Metrics
	now     func() time.Time
}

// NewLoader creates a loader. A nil store disables persistence; logger and
// metrics may also be nil.
func NewLoader(config *Config, store Store, logger logrus.FieldLogger, metrics *observability.Metrics) *Loader {
	if config == nil {
		config = DefaultConfig()
	}
	if config.URL == "" {
		config.URL = DefaultURL
	}
	if config.TTL <= 0 {
		config.TTL = DefaultTTL
	}
	if config.FetchTimeout <= 0 {
		config.FetchTimeout = DefaultFetchTimeout
	}
	if config.MemoSize <= 0 {
		config.MemoSize = DefaultMemoSize
	}
	if logger == nil {
		logger = observability.Discard()
	}

	return &Loader{
		config: config,
		store:  store,
		fetcher: NewFetcher(&http.Client{
			Timeout: config.FetchTimeout,
		}),
		memo:    lru.NewLRU[string, *Vocabulary](config.MemoSize, nil, config.TTL),
		logger:  logger.WithField("url", config.URL),
		metrics: metrics,
		now:     time.Now,
	}
}

// Load returns the parsed vocabulary. It fails with ErrVocabularyUnavailable
// when there is no fresh cached copy and the download fails or is malformed.
func (l *Loader) Load(ctx context.Context) (*Vocabulary, error) {
	if vocab, ok := l.memo.Get(l.config.URL); ok {
		l.metrics.RecordVocabularyLoad(observability.SourceMemory)
		return vocab, nil
	}

	result, err, _ := l.group.Do(l.config.URL, func() (interface{}, error) {
		return l.load(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result.(*Vocabulary), nil
}

// LoadInto loads the vocabulary and merges it into registry
func (l *Loader) LoadInto(ctx context.Context, registry *schema.Registry) error {
	vocab, err := l.Load(ctx)
	if err != nil {
		return err
	}

	registry.MergeDynamic(vocab.Classes, vocab.Properties)
	classes, properties := registry.DynamicSize()
	l.metrics.SetDefinitions(classes, properties)
	l.logger.WithFields(logrus.Fields{
		"classes":    classes,
		"properties": properties,
	}).Info("vocabulary loaded")

	return nil
}

func (l *Loader) load(ctx context.Context) (*Vocabulary, error) {
	cached := l.cached(ctx)

	if cached != nil && cached.Fresh(l.now(), l.config.TTL) {
		vocab, err := Parse(cached.Data)
		if err == nil {
			l.logger.WithField("fetched_at", cached.FetchedAt).Debug("using cached vocabulary")
			l.memo.Add(l.config.URL, vocab)
			l.metrics.RecordVocabularyLoad(observability.SourceCache)
			return vocab, nil
		}
		l.logger.WithError(err).Warn("cached vocabulary is unreadable, downloading a new copy")
	}

	vocab, err := l.download(ctx)
	if err == nil {
		l.memo.Add(l.config.URL, vocab)
		l.metrics.RecordVocabularyLoad(observability.SourceNetwork)
		return vocab, nil
	}

	// An expired copy is never used; callers fall back to built-in rules
	l.metrics.RecordVocabularyLoad(observability.SourceFailed)
	return nil, fmt.Errorf("%w: %v", ErrVocabularyUnavailable, err)
}

// cached reads the store, treating every store failure as a miss
func (l *Loader) cached(ctx context.Context) *Entry {
	if l.store == nil {
		return nil
	}

	entry, err := l.store.Get(ctx)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			l.logger.WithError(err).Warn("failed to read vocabulary cache")
		}
		return nil
	}
	return entry
}

// download fetches and parses a new copy, persisting it only once it parses
func (l *Loader) download(ctx context.Context) (*Vocabulary, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, l.config.FetchTimeout)
	defer cancel()

	start := l.now()
	data, err := l.fetcher.Fetch(fetchCtx, l.config.URL)
	l.metrics.ObserveFetch(l.now().Sub(start).Seconds())
	if err != nil {
		return nil, err
	}

	vocab, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if l.store != nil {
		if err := l.store.Put(ctx, data, l.now()); err != nil {
			l.logger.WithError(err).Warn("failed to write vocabulary cache")
		}
	}

	l.logger.WithFields(logrus.Fields{
		"bytes":      len(data),
		"classes":    len(vocab.Classes),
		"properties": len(vocab.Properties),
	}).Debug("downloaded vocabulary")

	return vocab, nil
}
