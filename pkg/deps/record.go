package deps

import (
	"encoding/json"
	"fmt"
	"io"

	errs "github.com/matzehuels/swiftdeps/pkg/errors"
)

// Record is one node of the dependency tree printed by
// `swift package show-dependencies --format json`.
type Record struct {
	Identity     string
	Name         string
	URL          string
	Version      string
	Path         string // checkout path; optional
	Dependencies []Record
}

type rawRecord struct {
	Identity     *string      `json:"identity"`
	Name         *string      `json:"name"`
	URL          *string      `json:"url"`
	Version      *string      `json:"version"`
	Path         string       `json:"path"`
	Dependencies *[]rawRecord `json:"dependencies"`
}

// ReadTree decodes a single root record from r and returns its direct
// children. The root describes the package being scanned and is not itself
// a dependency.
//
// Every record must carry identity, name, url, version and a dependencies
// array (which may be empty). Malformed JSON, a missing field, or data after
// the root value yields a DECODE_ERROR.
func ReadTree(r io.Reader) ([]Record, error) {
	dec := json.NewDecoder(r)

	var root rawRecord
	if err := dec.Decode(&root); err != nil {
		return nil, errs.Wrap(errs.ErrCodeDecode, err, "read dependency tree")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errs.New(errs.ErrCodeDecode, "read dependency tree: unexpected data after root record")
	}

	rec, err := root.record("$")
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeDecode, err, "read dependency tree")
	}
	return rec.Dependencies, nil
}

func (r *rawRecord) record(at string) (Record, error) {
	fields := []struct {
		name string
		val  *string
	}{
		{"identity", r.Identity},
		{"name", r.Name},
		{"url", r.URL},
		{"version", r.Version},
	}
	for _, f := range fields {
		if f.val == nil {
			return Record{}, fmt.Errorf("%s: missing %q", at, f.name)
		}
	}
	if r.Dependencies == nil {
		return Record{}, fmt.Errorf("%s: missing %q", at, "dependencies")
	}

	rec := Record{
		Identity:     *r.Identity,
		Name:         *r.Name,
		URL:          *r.URL,
		Version:      *r.Version,
		Path:         r.Path,
		Dependencies: make([]Record, 0, len(*r.Dependencies)),
	}
	for i := range *r.Dependencies {
		child, err := (*r.Dependencies)[i].record(fmt.Sprintf("%s.dependencies[%d]", at, i))
		if err != nil {
			return Record{}, err
		}
		rec.Dependencies = append(rec.Dependencies, child)
	}
	return rec, nil
}
