package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	errs "github.com/matzehuels/swiftdeps/pkg/errors"
	"github.com/matzehuels/swiftdeps/pkg/submission"
)

// WriteJSON encodes doc as canonical JSON and writes it to w.
// Nothing is written if encoding fails.
func WriteJSON(doc *submission.Document, w io.Writer) error {
	data, err := canonicalize(doc)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "encode snapshot")
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// canonicalize marshals v, then re-encodes it through generic maps so that
// struct fields are emitted in key order just like map keys.
func canonicalize(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(generic); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
