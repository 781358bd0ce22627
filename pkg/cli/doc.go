// Package cli provides the schema-validator command-line interface.
//
// # Overview
//
// The tool reads an HTML page or JSON-LD file, validates every JSON-LD
// block it contains and exits with a status derived from the last finding.
//
// # Commands
//
// validate (the default when only flags are given):
//
//	schema-validator --file event.html
//	schema-validator --file https://example.com/concert --dynamic
//	schema-validator validate --file event.json --github --sarif-out out.sarif
//
// Local files can be watched and re-validated on every save:
//
//	schema-validator --file event.html --watch
//
// rules: List rule ids with their exit codes
//
//	schema-validator rules
//
// version: Print the build version
//
//	schema-validator version
//
// # Flags
//
//	--file          Path or URL to validate (required)
//	--github        Write SARIF instead of text
//	--dynamic       Also check against the schema.org vocabulary
//	--config        YAML config file
//	--sarif-out     SARIF destination (default schema_validation.sarif)
//	--metrics-file  Prometheus textfile destination
//	--log-level     debug, info, warn, error
//	--watch         Re-run when the file changes
//	--rules         List rules and exit
//
// # Exit Status
//
// 0 when there are no findings, 1 when the input cannot be read, otherwise
// the code mapped from the last finding's rule (see report.Catalogue).
//
// # Related Packages
//
//   - pkg/config: Configuration file and environment variables
//   - pkg/validation: The validation engine
//   - pkg/report: Text and SARIF output
package cli
