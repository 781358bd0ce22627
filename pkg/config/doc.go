// Package config loads run configuration from a YAML file and the environment.
//
// # Overview
//
// Settings are layered: built-in defaults, then the config file, then
// environment variables. Command-line flags are applied last by pkg/cli.
//
// # Configuration File
//
// Passed with --config, or found as .schema-validator.yaml in the working
// directory:
//
//	dynamic: true
//	log_level: info
//	vocabulary:
//	  url: https://schema.org/version/latest/schemaorg-current-https.jsonld
//	  cache_dir: /var/cache/schema-validator
//	  ttl: 24h
//	  fetch_timeout: 30s
//	output:
//	  sarif_path: schema_validation.sarif
//	  metrics_file: /var/lib/node_exporter/schema_validator.prom
//
// # Environment Variables
//
//	CACHE_DIR="/tmp/cache"                  # vocabulary cache directory
//	SCHEMA_VALIDATOR_VOCABULARY_URL="https://..."
//	SCHEMA_VALIDATOR_CACHE_TTL="24h"        # or seconds, e.g. "86400"
//	SCHEMA_VALIDATOR_FETCH_TIMEOUT="30s"
//	SCHEMA_VALIDATOR_REDIS_URL="redis://localhost:6379/0"
//	SCHEMA_VALIDATOR_SARIF_PATH="schema_validation.sarif"
//	SCHEMA_VALIDATOR_METRICS_FILE="metrics.prom"
//	SCHEMA_VALIDATOR_DYNAMIC="true"
//	SCHEMA_VALIDATOR_LOG_LEVEL="warn"       # debug, info, warn, error
//
// # Usage Example
//
//	cfg, err := config.Load(configPath)
//	if err != nil {
//		return err
//	}
//	loader := vocabulary.NewLoader(cfg.LoaderConfig(), store, logger, metrics)
//
// # Related Packages
//
//   - pkg/vocabulary: Uses vocabulary configuration
//   - pkg/observability: Uses the log level
package config
