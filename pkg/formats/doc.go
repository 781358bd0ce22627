// Package formats checks scalar property values against the semantic types a
// vocabulary property may take (its rangeIncludes).
//
// # Overview
//
// Each semantic type is a named Predicate held in a registry. Check walks the
// expected types of a property in a fixed priority order and stops at the
// first type the value satisfies:
//
//	Text, URL, Email, Date, DateTime, Time, Number, Integer, Boolean, Country, Gender
//
// Text always matches. Types without a registered predicate are reported as
// unverifiable rather than as a mismatch.
//
// # Usage Example
//
//	res := formats.Check([]string{"Date", "DateTime"}, "2024-06-01T20:00")
//	if res.Outcome == formats.Mismatch {
//		fmt.Println("bad date")
//	}
//
//	isURL, _ := formats.Lookup("URL")
//	isURL("https://example.com") // true
//
// # Related Packages
//
//   - pkg/validation: Emits findings from Check outcomes
//   - pkg/schema: Built-in rules reuse the predicates
package formats
