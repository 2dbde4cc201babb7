// Package pkg holds the libraries behind the swiftdeps command.
//
// # Overview
//
// swiftdeps turns the dependency tree of a Swift package into a snapshot for
// GitHub's dependency submission API:
//
//	swift package show-dependencies --format json
//	         ↓
//	    [deps] package (read and flatten the tree)
//	         ↓
//	    [submission] package (assemble the snapshot document)
//	         ↓
//	    [io] package (deterministic JSON)
//	         ↓
//	    [integrations/github] package (optional submission)
//
// [pipeline] runs these stages for the CLI and reports them through
// [observability]. [config] builds run metadata from the environment, [purl]
// implements Swift package URLs and [render] draws the flattened graph.
//
// [deps]: github.com/matzehuels/swiftdeps/pkg/deps
// [submission]: github.com/matzehuels/swiftdeps/pkg/submission
// [io]: github.com/matzehuels/swiftdeps/pkg/io
// [integrations/github]: github.com/matzehuels/swiftdeps/pkg/integrations/github
// [pipeline]: github.com/matzehuels/swiftdeps/pkg/pipeline
// [observability]: github.com/matzehuels/swiftdeps/pkg/observability
// [config]: github.com/matzehuels/swiftdeps/pkg/config
// [purl]: github.com/matzehuels/swiftdeps/pkg/purl
// [render]: github.com/matzehuels/swiftdeps/pkg/render
package pkg
