package render

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"

	"github.com/goccy/go-graphviz"

	errs "github.com/matzehuels/swiftdeps/pkg/errors"
	"github.com/matzehuels/swiftdeps/pkg/submission"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds the package URL to each node label.
	// When false, labels carry the identity and version only.
	Detailed bool
}

// ToDOT converts a resolved dependency set to Graphviz DOT format.
//
// Dependencies that name an identity missing from resolved are drawn with a
// dashed outline so dangling edges stay visible.
func ToDOT(resolved map[string]submission.Package, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	ids := slices.Sorted(maps.Keys(resolved))
	var missing []string
	for _, id := range ids {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", id, fmtLabel(id, resolved[id], opts.Detailed))
		for _, d := range resolved[id].Dependencies {
			if _, ok := resolved[d]; !ok {
				missing = append(missing, d)
			}
		}
	}
	slices.Sort(missing)
	for _, id := range slices.Compact(missing) {
		fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,filled,dashed\", fillcolor=lightgrey];\n", id, id)
	}

	buf.WriteString("\n")
	for _, id := range ids {
		for _, d := range resolved[id].Dependencies {
			fmt.Fprintf(&buf, "  %q -> %q;\n", id, d)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(id string, pkg submission.Package, detailed bool) string {
	label := id + "\n" + pkg.PackageURL.Version
	if detailed {
		label += "\n" + pkg.PackageURL.String()
	}
	return label
}

// RenderSVG renders a DOT graph to SVG using the embedded Graphviz build.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "render SVG")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the drawing starts at the
// origin and carries explicit pixel dimensions.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

