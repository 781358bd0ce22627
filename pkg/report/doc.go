// Package report renders validation findings and derives the exit status.
//
// Interactive runs print one line per finding:
//
//	  [SCHEMA001] Missing required property "startdate" for type "MusicEvent" (at root)
//	✓ PostalAddress passed built-in checks (at root->location)
//
// CI runs write a SARIF 2.1.0 log for code scanning instead.
//
// The exit status comes from the last finding's rule id, see Catalogue.
package report
