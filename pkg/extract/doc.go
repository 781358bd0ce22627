// Package extract pulls JSON-LD blocks out of HTML pages or raw JSON files.
//
// Every <script type="application/ld+json"> element becomes one block, in
// document order. Read fetches http(s) locations and opens everything else
// as a local path.
package extract
