// Package pipeline runs the read → flatten → encode stages shared by every
// swiftdeps command.
//
// Each stage reports to the hooks registered with [observability.SetStageHooks],
// so callers can log or measure progress without the stages knowing about it.
// Stages never write to the caller's output: results are returned as bytes in
// [Result.Output] and written only once the whole pipeline has succeeded.
//
// # Usage
//
//	res, err := pipeline.Convert(ctx, os.Stdin, cfg.Metadata)
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(res.Output)
//
// [observability.SetStageHooks]: github.com/matzehuels/swiftdeps/pkg/observability
package pipeline

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/matzehuels/swiftdeps/pkg/deps"
	errs "github.com/matzehuels/swiftdeps/pkg/errors"
	"github.com/matzehuels/swiftdeps/pkg/integrations/github"
	swiftio "github.com/matzehuels/swiftdeps/pkg/io"
	"github.com/matzehuels/swiftdeps/pkg/observability"
	"github.com/matzehuels/swiftdeps/pkg/render"
	"github.com/matzehuels/swiftdeps/pkg/submission"
)

// Output formats accepted by [Graph].
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// ValidFormats lists every format [Graph] can produce.
var ValidFormats = []string{FormatDOT, FormatSVG}

// ValidateFormat checks that format is one of [ValidFormats].
func ValidateFormat(format string) error {
	for _, f := range ValidFormats {
		if f == format {
			return nil
		}
	}
	return errs.New(errs.ErrCodeInvalidInput, "unknown format %q (want dot or svg)", format)
}

// Stats describes one pipeline run.
type Stats struct {
	Packages    int
	Edges       int
	ReadTime    time.Duration
	FlattenTime time.Duration
	WriteTime   time.Duration
}

// Result holds the encoded output of a run and the intermediate values that
// produced it.
type Result struct {
	Document *submission.Document // nil for Graph
	Resolved map[string]submission.Package
	Output   []byte
	Stats    Stats
}

// Resolve reads a dependency tree from in and flattens it.
func Resolve(ctx context.Context, in io.Reader) (map[string]submission.Package, Stats, error) {
	var stats Stats

	var records []deps.Record
	d, err := stage(ctx, observability.StageRead, func() (int, error) {
		var err error
		records, err = deps.ReadTree(in)
		return len(records), err
	})
	stats.ReadTime = d
	if err != nil {
		return nil, stats, err
	}

	var resolved map[string]submission.Package
	d, err = stage(ctx, observability.StageFlatten, func() (int, error) {
		var err error
		resolved, err = deps.Flatten(records)
		return len(resolved), err
	})
	stats.FlattenTime = d
	if err != nil {
		return nil, stats, err
	}

	m := submission.Manifest{Resolved: resolved}
	stats.Packages = len(resolved)
	stats.Edges = m.EdgeCount()
	return resolved, stats, nil
}

// Convert reads a dependency tree from in and encodes it as a snapshot
// document carrying meta.
func Convert(ctx context.Context, in io.Reader, meta submission.Metadata) (*Result, error) {
	resolved, stats, err := Resolve(ctx, in)
	if err != nil {
		return nil, err
	}

	doc := submission.Assemble(resolved, meta)
	var buf bytes.Buffer
	stats.WriteTime, err = stage(ctx, observability.StageWrite, func() (int, error) {
		err := swiftio.WriteJSON(doc, &buf)
		return doc.PackageCount(), err
	})
	if err != nil {
		return nil, err
	}

	return &Result{Document: doc, Resolved: resolved, Output: buf.Bytes(), Stats: stats}, nil
}

// GraphOptions configures [Graph].
type GraphOptions struct {
	Format   string // FormatDOT (default) or FormatSVG
	Detailed bool   // include package URLs in node labels
}

// Graph reads a dependency tree from in and draws it.
func Graph(ctx context.Context, in io.Reader, opts GraphOptions) (*Result, error) {
	if opts.Format == "" {
		opts.Format = FormatDOT
	}
	if err := ValidateFormat(opts.Format); err != nil {
		return nil, err
	}

	resolved, stats, err := Resolve(ctx, in)
	if err != nil {
		return nil, err
	}

	var out []byte
	stats.WriteTime, err = stage(ctx, observability.StageRender, func() (int, error) {
		dot := render.ToDOT(resolved, render.Options{Detailed: opts.Detailed})
		if opts.Format == FormatDOT {
			out = []byte(dot)
			return len(out), nil
		}
		var err error
		out, err = render.RenderSVG(ctx, dot)
		return len(out), err
	})
	if err != nil {
		return nil, err
	}

	return &Result{Resolved: resolved, Output: out, Stats: stats}, nil
}

// Submitter posts a snapshot document to a dependency graph service.
type Submitter interface {
	Submit(ctx context.Context, doc *submission.Document) (*github.Result, error)
}

// Submit reads a snapshot document from in and hands it to s.
func Submit(ctx context.Context, s Submitter, in io.Reader) (*submission.Document, *github.Result, error) {
	return submit(ctx, s, func() (*submission.Document, error) {
		return swiftio.ReadJSON(in)
	})
}

// SubmitFile is [Submit] for the snapshot file at path.
func SubmitFile(ctx context.Context, s Submitter, path string) (*submission.Document, *github.Result, error) {
	return submit(ctx, s, func() (*submission.Document, error) {
		return swiftio.ImportJSON(path)
	})
}

func submit(ctx context.Context, s Submitter, load func() (*submission.Document, error)) (*submission.Document, *github.Result, error) {
	var doc *submission.Document
	_, err := stage(ctx, observability.StageRead, func() (int, error) {
		var err error
		doc, err = load()
		if err != nil {
			return 0, err
		}
		return doc.PackageCount(), nil
	})
	if err != nil {
		return nil, nil, err
	}

	var res *github.Result
	_, err = stage(ctx, observability.StageSubmit, func() (int, error) {
		var err error
		res, err = s.Submit(ctx, doc)
		return doc.PackageCount(), err
	})
	if err != nil {
		return nil, nil, err
	}
	return doc, res, nil
}

// stage runs fn between the start and completion hooks of name. fn returns
// the number of items the stage produced.
func stage(ctx context.Context, name string, fn func() (int, error)) (time.Duration, error) {
	hooks := observability.Stages()
	hooks.OnStageStart(ctx, name)
	start := time.Now()
	n, err := fn()
	d := time.Since(start)
	hooks.OnStageComplete(ctx, name, n, d, err)
	return d, err
}
