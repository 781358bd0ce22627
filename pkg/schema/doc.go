// Package schema holds the type rules entities are validated against.
//
// # Overview
//
// A Registry combines two sources of rules:
//
// Built-in: a fixed TypeRule table (MusicEvent, PostalAddress,
// PerformingGroup, Person) with required properties, nested object types,
// enumerations and scalar format checks.
//
// Dynamic: ClassDefinition and PropertyDefinition values loaded from the
// schema.org vocabulary, indexed under both their label and the short name
// taken from their identifier ("schema:startDate" -> "startDate").
//
// # Usage Example
//
//	registry := schema.New()
//	registry.MergeDynamic(vocab.Classes, vocab.Properties)
//
//	if rule, ok := registry.LookupType("MusicEvent"); ok {
//		fmt.Println(rule.Required)
//	}
//
// # Related Packages
//
//   - pkg/vocabulary: Loads dynamic definitions
//   - pkg/validation: Walks entities against the registry
package schema
