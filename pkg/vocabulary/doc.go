// Package vocabulary loads the schema.org JSON-LD vocabulary with caching.
//
// # Overview
//
// The Loader resolves the vocabulary in three steps:
//
//  1. An in-process LRU memo keyed by URL
//  2. The Store, when its copy is younger than the TTL (default 24h)
//  3. A download bounded by FetchTimeout, persisted only after it parses
//
// An expired copy is never used. When all three fail Load returns
// ErrVocabularyUnavailable and callers continue with no dynamic
// definitions, so built-in types report SCHEMA_DYN0.
//
// Two stores are provided. FileStore keeps one file under the cache
// directory and uses its modification time as the fetch time. RedisStore
// keeps the document in a hash so several CI runners share one download.
//
// # Usage Example
//
//	loader := vocabulary.NewLoader(vocabulary.DefaultConfig(),
//		vocabulary.NewFileStore(cacheDir), logger, metrics)
//	if err := loader.LoadInto(ctx, registry); err != nil {
//		logger.Warnf("dynamic validation disabled: %v", err)
//	}
//
// # Related Packages
//
//   - pkg/schema: Receives the parsed class and property definitions
//   - pkg/config: Supplies URL, TTL and cache location
package vocabulary
