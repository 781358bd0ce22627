package vocabulary

import (
	"time"

	"github.com/nigelhorne/schema-validator/pkg/schema"
)

const (
	// DefaultURL is the schema.org JSON-LD release
	DefaultURL = "https://schema.org/version/latest/schemaorg-current-https.jsonld"

	// CacheFileName is the name of the cached copy inside the cache directory
	CacheFileName = "schemaorg-current-https.jsonld"

	DefaultTTL          = 24 * time.Hour
	DefaultFetchTimeout = 30 * time.Second
	DefaultMemoSize     = 8
)

// Config holds loader configuration
type Config struct {
	URL          string        // Vocabulary document URL
	TTL          time.Duration // Freshness window for cached copies (default: 24h)
	FetchTimeout time.Duration // Bound on the download (default: 30s)
	MemoSize     int           // In-process parsed copies kept (default: 8)
}

// DefaultConfig returns default loader configuration
func DefaultConfig() *Config {
	return &Config{
		URL:          DefaultURL,
		TTL:          DefaultTTL,
		FetchTimeout: DefaultFetchTimeout,
		MemoSize:     DefaultMemoSize,
	}
}

// Vocabulary is the parsed class and property catalogue
type Vocabulary struct {
	Classes    []schema.ClassDefinition
	Properties []schema.PropertyDefinition
}

// Entry is a cached copy of the raw vocabulary document
type Entry struct {
	Data      []byte
	FetchedAt time.Time
}

// Fresh reports whether the entry is younger than ttl at now
func (e *Entry) Fresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.FetchedAt) < ttl
}
