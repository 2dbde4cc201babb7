// Package deps reads the dependency tree printed by
// `swift package show-dependencies --format json` and flattens it into the
// resolved map of a dependency snapshot.
//
// # Reading
//
// [ReadTree] decodes one JSON object and returns the root package's
// children. Every record must carry identity, name, url, version and
// dependencies; the root itself is the project being scanned and is not
// part of the result.
//
// # Flattening
//
// [Flatten] walks the records depth first with an explicit stack, so deep
// trees cannot exhaust the goroutine stack:
//
//	records, err := deps.ReadTree(os.Stdin)
//	if err != nil {
//	    return err
//	}
//	resolved, err := deps.Flatten(records)
//
// Each identity appears once in the result. The first occurrence to finish
// wins and later subtrees under the same identity are not visited again.
// Dependency lists are sorted and free of duplicates. A package that
// reaches itself again through its own subtree yields DEPENDENCY_CYCLE; a
// URL that cannot be parsed yields INVALID_URL naming the package.
package deps
