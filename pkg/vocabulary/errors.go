package vocabulary

import "errors"

var (
	// ErrCacheMiss is returned by a Store that holds no vocabulary copy
	ErrCacheMiss = errors.New("vocabulary cache miss")

	// ErrVocabularyUnavailable is returned when neither a fresh cached copy nor a download is usable
	ErrVocabularyUnavailable = errors.New("vocabulary unavailable")

	// ErrMalformedVocabulary is returned when a vocabulary document cannot be parsed
	ErrMalformedVocabulary = errors.New("malformed vocabulary document")
)
