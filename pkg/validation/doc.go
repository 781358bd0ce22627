// Package validation walks JSON-LD entities and reports rule violations.
//
// # Overview
//
// A Validator performs a pre-order walk of an entity tree. For each entity it
// resolves @type against the schema registry and emits Findings into an
// explicit Context rather than into shared state, so runs are independent.
//
// # Checks
//
// Built-in types (schema.TypeRule):
//   - SCHEMA001 missing required property
//   - SCHEMA004 value outside an enumeration
//   - SCHEMA003 scalar format check failed
//   - nested properties are descended into at "path->prop" or "path->prop[i]"
//   - SCHEMA005 MusicEvent performer is not a PerformingGroup or Person
//
// Dynamic vocabulary (when Context.Dynamic is set):
//   - SCHEMA_DYN0 built-in type with no vocabulary class
//   - SCHEMA_DYN1 nested object without @type
//   - SCHEMA_DYN2 nested object with a type the vocabulary does not know
//   - SCHEMA_DYNFMT / SCHEMA_CTRY value does not fit the property's range
//
// Structural: SCHEMA000 missing or invalid @type, SCHEMA002 unknown type.
//
// Built-in rules always run first; dynamic checks only add findings.
// Properties are visited in lexicographic order, so the finding sequence
// for a given input is deterministic.
//
// # Usage Example
//
//	ctx := validation.NewContext(schema.New(), false)
//	v := validation.NewValidator(logger, metrics)
//	if err := v.ValidateDocument(block, ctx); err != nil {
//		logger.Warnf("skipping block: %v", err)
//	}
//	for _, f := range ctx.Findings() {
//		fmt.Printf("[%s] %s (at %s)\n", f.RuleID, f.Message, f.Path)
//	}
//
// # Related Packages
//
//   - pkg/schema: Type rules and vocabulary definitions
//   - pkg/formats: Property format predicates
//   - pkg/report: Renders findings and derives the exit status
package validation
