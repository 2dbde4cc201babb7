package deps

import (
	"slices"
	"strings"

	errs "github.com/matzehuels/swiftdeps/pkg/errors"
	"github.com/matzehuels/swiftdeps/pkg/purl"
	"github.com/matzehuels/swiftdeps/pkg/submission"
)

// Flatten collapses a dependency tree into one resolved package per
// identity.
//
// Records are visited depth-first in input order. A record's children are
// resolved before the record itself, and a record whose identity has
// already been resolved is skipped together with its subtree, so the first
// occurrence of an identity to complete wins. Each package lists the sorted,
// de-duplicated identities of its own direct children; since children are
// always resolved first, every listed identity is a key of the result.
//
// Flatten fails with INVALID_URL, naming the package, when a source URL
// cannot be parsed, and with DEPENDENCY_CYCLE when an identity reappears
// below itself. No partial result is returned on error.
func Flatten(records []Record) (map[string]submission.Package, error) {
	type frame struct {
		rec      *Record // nil for the synthetic root
		children []Record
		next     int
	}

	resolved := make(map[string]submission.Package)
	visiting := make(map[string]bool)
	stack := []frame{{children: records}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if top.next < len(top.children) {
			child := &top.children[top.next]
			top.next++
			if _, ok := resolved[child.Identity]; ok {
				continue
			}
			if visiting[child.Identity] {
				path := make([]string, 0, len(stack))
				for _, f := range stack[1:] {
					path = append(path, f.rec.Identity)
				}
				return nil, cycleError(path, child.Identity)
			}
			visiting[child.Identity] = true
			stack = append(stack, frame{rec: child, children: child.Dependencies})
			continue
		}

		rec := top.rec
		stack = stack[:len(stack)-1]
		if rec == nil {
			continue
		}
		delete(visiting, rec.Identity)

		pkg, err := resolve(rec)
		if err != nil {
			return nil, err
		}
		resolved[rec.Identity] = pkg
	}

	return resolved, nil
}

func resolve(rec *Record) (submission.Package, error) {
	u, err := purl.ParseURL(rec.URL)
	if err != nil {
		return submission.Package{}, errs.Wrap(errs.ErrCodeInvalidURL, err, "invalid URL for package %s", rec.Identity)
	}

	ids := make([]string, 0, len(rec.Dependencies))
	for _, d := range rec.Dependencies {
		ids = append(ids, d.Identity)
	}
	slices.Sort(ids)

	return submission.Package{
		PackageURL:   purl.FromURL(u, rec.Version),
		Dependencies: slices.Compact(ids),
	}, nil
}

// cycleError reports the identities from the first occurrence of id on path
// back round to id.
func cycleError(path []string, id string) error {
	start := slices.Index(path, id)
	if start < 0 {
		start = 0
	}
	loop := append(slices.Clone(path[start:]), id)
	return errs.New(errs.ErrCodeCycle, "dependency cycle: %s", strings.Join(loop, " -> "))
}
