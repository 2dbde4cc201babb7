// Package submission models the dependency snapshot accepted by GitHub's
// dependency submission API and assembles it from a flattened package map.
//
// The wire shape is:
//
//	{
//	  "owner": "...", "repo": "...", "version": 0,
//	  "sha": "...", "ref": "refs/heads/main",
//	  "job": {"correlator": "...", "id": "..."},
//	  "detector": {"name": "...", "version": "...", "url": "..."},
//	  "scanned": "2024-01-02T03:04:05Z",
//	  "manifests": {
//	    "Package.resolved": {
//	      "name": "Package.resolved",
//	      "file": {"source_location": "Package.resolved"},
//	      "resolved": {
//	        "swift-log": {
//	          "package_url": "pkg:swift/github.com/apple/swift-log@1.5.4",
//	          "dependencies": []
//	        }
//	      }
//	    }
//	  }
//	}
//
// Deterministic serialization lives in package io; this package only builds
// the values.
package submission

import (
	"fmt"
	"time"

	"github.com/matzehuels/swiftdeps/pkg/purl"
)

// SchemaVersion is the snapshot format version.
const SchemaVersion = 0

// ManifestName names the single manifest produced per run. It doubles as the
// manifest's source location.
const ManifestName = "Package.resolved"

// Document is a complete dependency snapshot for one commit.
type Document struct {
	Owner     string               `json:"owner"`
	Repo      string               `json:"repo"`
	Version   int                  `json:"version"`
	Sha       string               `json:"sha"`
	Ref       string               `json:"ref"`
	Job       Job                  `json:"job"`
	Detector  Detector             `json:"detector"`
	Scanned   Timestamp            `json:"scanned"`
	Manifests map[string]*Manifest `json:"manifests"`
}

// Job correlates snapshots submitted by the same workflow job.
type Job struct {
	Correlator string `json:"correlator"`
	ID         string `json:"id"`
}

// Detector describes the tool that produced the snapshot.
type Detector struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	URL     string `json:"url"`
}

// Manifest groups the packages resolved from one manifest file.
type Manifest struct {
	Name     string             `json:"name"`
	File     File               `json:"file"`
	Resolved map[string]Package `json:"resolved"`
}

// File locates a manifest within the repository.
type File struct {
	SourceLocation string `json:"source_location"`
}

// Package is one resolved dependency: its identifier plus the identities of
// its direct dependencies, sorted and free of duplicates.
type Package struct {
	PackageURL   purl.Identifier `json:"package_url"`
	Dependencies []string        `json:"dependencies"`
}

// EdgeCount returns the number of dependency references in the manifest.
func (m *Manifest) EdgeCount() int {
	n := 0
	for _, p := range m.Resolved {
		n += len(p.Dependencies)
	}
	return n
}

// PackageCount returns the number of resolved packages across all manifests.
func (d *Document) PackageCount() int {
	n := 0
	for _, m := range d.Manifests {
		n += len(m.Resolved)
	}
	return n
}

// Timestamp is a time encoded as RFC 3339 in UTC with second precision,
// e.g. "2024-01-02T03:04:05Z".
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to seconds and converts it to UTC.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Second)}
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.UTC().Format(time.RFC3339) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler. Any RFC 3339 offset is accepted.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("timestamp must be a JSON string, got %s", s)
	}
	parsed, err := time.Parse(time.RFC3339, s[1:len(s)-1])
	if err != nil {
		return fmt.Errorf("parse timestamp: %w", err)
	}
	t.Time = parsed
	return nil
}
