package io

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	errs "github.com/matzehuels/swiftdeps/pkg/errors"
	"github.com/matzehuels/swiftdeps/pkg/purl"
	"github.com/matzehuels/swiftdeps/pkg/submission"
)

func testDocument() *submission.Document {
	return &submission.Document{
		Owner:    "o",
		Repo:     "r",
		Version:  submission.SchemaVersion,
		Sha:      "abc",
		Ref:      "refs/heads/main",
		Job:      submission.Job{Correlator: "c", ID: "1"},
		Detector: submission.Detector{Name: "d", Version: "v1", URL: "https://github.com/o/a"},
		Scanned:  submission.NewTimestamp(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)),
		Manifests: map[string]*submission.Manifest{
			submission.ManifestName: {
				Name: submission.ManifestName,
				File: submission.File{SourceLocation: submission.ManifestName},
				Resolved: map[string]submission.Package{
					"a": {PackageURL: purl.New("example.com/org", "A", "1.0.0"), Dependencies: []string{}},
				},
			},
		},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(testDocument(), &buf); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}

	want := `{"detector":{"name":"d","url":"https://github.com/o/a","version":"v1"},` +
		`"job":{"correlator":"c","id":"1"},` +
		`"manifests":{"Package.resolved":{"file":{"source_location":"Package.resolved"},"name":"Package.resolved",` +
		`"resolved":{"a":{"dependencies":[],"package_url":"pkg:swift/example.com/org/A@1.0.0"}}}},` +
		`"owner":"o","ref":"refs/heads/main","repo":"r","scanned":"2024-01-02T03:04:05Z","sha":"abc","version":0}` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteJSON() =\n%s\nwant\n%s", got, want)
	}
}

func TestWriteJSONNoEscaping(t *testing.T) {
	doc := testDocument()
	doc.Ref = "refs/heads/feature/<x>&y"

	var buf bytes.Buffer
	if err := WriteJSON(doc, &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, `\/`) || strings.Contains(out, `<`) || strings.Contains(out, `&`) {
		t.Errorf("output contains escaped characters: %s", out)
	}
	if !strings.Contains(out, `"ref":"refs/heads/feature/<x>&y"`) {
		t.Errorf("ref not written verbatim: %s", out)
	}
}

func TestWriteJSONDeterministic(t *testing.T) {
	doc := testDocument()
	m := doc.Manifests[submission.ManifestName]
	for _, id := range []string{"zeta", "beta", "mu", "alpha"} {
		m.Resolved[id] = submission.Package{PackageURL: purl.New("example.com", id, "1"), Dependencies: []string{"a"}}
	}

	var first, second bytes.Buffer
	if err := WriteJSON(doc, &first); err != nil {
		t.Fatal(err)
	}
	if err := WriteJSON(doc, &second); err != nil {
		t.Fatal(err)
	}
	if first.String() != second.String() {
		t.Error("two encodings of the same document differ")
	}
	if i, j := strings.Index(first.String(), `"alpha"`), strings.Index(first.String(), `"zeta"`); i > j {
		t.Error("resolved keys are not sorted")
	}
}

func TestReadJSONRoundTrip(t *testing.T) {
	doc := testDocument()
	var buf bytes.Buffer
	if err := WriteJSON(doc, &buf); err != nil {
		t.Fatal(err)
	}

	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if !back.Scanned.Equal(doc.Scanned.Time) {
		t.Errorf("Scanned = %v, want %v", back.Scanned, doc.Scanned)
	}
	back.Scanned = doc.Scanned
	if !reflect.DeepEqual(back, doc) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", back, doc)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"malformed", `{"owner":`},
		{"bad timestamp", `{"scanned":"2024-01-02 03:04:05","manifests":{"m":{}}}`},
		{"bad package url", `{"scanned":"2024-01-02T03:04:05Z","manifests":{"m":{"resolved":{"a":{"package_url":"pkg:npm/x@1"}}}}}`},
		{"no manifests", `{"scanned":"2024-01-02T03:04:05Z"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.in))
			if !errs.Is(err, errs.ErrCodeDecode) {
				t.Errorf("ReadJSON() error = %v, want %s", err, errs.ErrCodeDecode)
			}
		})
	}
}

func TestImportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	doc := testDocument()

	var buf bytes.Buffer
	if err := WriteJSON(doc, &buf); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	back, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}
	if back.Owner != doc.Owner || back.PackageCount() != 1 {
		t.Errorf("imported %+v", back)
	}

	_, err = ImportJSON(filepath.Join(t.TempDir(), "missing.json"))
	if !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("ImportJSON(missing) error = %v, want %s", err, errs.ErrCodeInvalidInput)
	}
}
