package io

import (
	"encoding/json"
	"io"
	"os"

	errs "github.com/matzehuels/swiftdeps/pkg/errors"
	"github.com/matzehuels/swiftdeps/pkg/submission"
)

// ReadJSON decodes a snapshot document from r.
//
// Package URLs must be well-formed Swift identifiers and the scan time must
// be an RFC 3339 string. Malformed input yields a DECODE_ERROR.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*submission.Document, error) {
	var doc submission.Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errs.Wrap(errs.ErrCodeDecode, err, "read snapshot")
	}
	if len(doc.Manifests) == 0 {
		return nil, errs.New(errs.ErrCodeDecode, "read snapshot: no manifests")
	}
	return &doc, nil
}

// ImportJSON reads a snapshot document from the JSON file at path.
func ImportJSON(path string) (*submission.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "open snapshot")
	}
	defer f.Close()
	return ReadJSON(f)
}
