// Package io reads and writes dependency snapshot documents as JSON.
//
// # Output Format
//
// [WriteJSON] produces byte-stable output so snapshots can be diffed or
// hashed by downstream tools:
//
//   - object keys are sorted at every nesting level
//   - HTML characters and "/" are written unescaped
//   - timestamps use RFC 3339 in UTC, e.g. "2024-01-02T03:04:05Z"
//   - the document is a single line followed by a newline
//
// Two documents built from the same dependency tree and run metadata differ
// only in their "scanned" field.
//
// # Input
//
// [ReadJSON] is the mirror operation and accepts any RFC 3339 timestamp. It
// is used when submitting a previously written snapshot:
//
//	doc, err := io.ImportJSON("snapshot.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
package io
