package github

import (
	gh "github.com/google/go-github/v62/github"

	"github.com/matzehuels/swiftdeps/pkg/submission"
)

// toSnapshot converts a document into the go-github request type.
func toSnapshot(doc *submission.Document) *gh.DependencyGraphSnapshot {
	manifests := make(map[string]*gh.DependencyGraphSnapshotManifest, len(doc.Manifests))
	for key, m := range doc.Manifests {
		resolved := make(map[string]*gh.DependencyGraphSnapshotResolvedDependency, len(m.Resolved))
		for id, p := range m.Resolved {
			resolved[id] = &gh.DependencyGraphSnapshotResolvedDependency{
				PackageURL:   gh.String(p.PackageURL.String()),
				Dependencies: p.Dependencies,
			}
		}
		manifests[key] = &gh.DependencyGraphSnapshotManifest{
			Name:     gh.String(m.Name),
			File:     &gh.DependencyGraphSnapshotManifestFile{SourceLocation: gh.String(m.File.SourceLocation)},
			Resolved: resolved,
		}
	}

	return &gh.DependencyGraphSnapshot{
		Version: doc.Version,
		Sha:     gh.String(doc.Sha),
		Ref:     gh.String(doc.Ref),
		Job: &gh.DependencyGraphSnapshotJob{
			Correlator: gh.String(doc.Job.Correlator),
			ID:         gh.String(doc.Job.ID),
		},
		Detector: &gh.DependencyGraphSnapshotDetector{
			Name:    gh.String(doc.Detector.Name),
			Version: gh.String(doc.Detector.Version),
			URL:     gh.String(doc.Detector.URL),
		},
		Scanned:   &gh.Timestamp{Time: doc.Scanned.Time},
		Manifests: manifests,
	}
}
