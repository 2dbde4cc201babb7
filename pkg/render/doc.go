// Package render draws a resolved dependency set as a node-link diagram.
//
// # Usage
//
// Convert the resolved map of a manifest to DOT, then optionally render it
// to SVG in-process:
//
//	dot := render.ToDOT(manifest.Resolved, render.Options{})
//	svg, err := render.RenderSVG(ctx, dot)
//
// # DOT Format
//
// The [ToDOT] output is deterministic: nodes are emitted in identity order
// and edges in dependency order, so the same resolved set always yields the
// same text. It uses a top-to-bottom layout with rounded box nodes and can be
// passed to external Graphviz tools unchanged.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for SVG rendering. No
// system Graphviz installation is needed.
package render
