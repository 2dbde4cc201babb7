package submission

import "time"

// Assemble wraps a resolved package map and run metadata into a snapshot
// document. The scan time is taken when Assemble is called. Assemble does no
// resolution of its own and keeps a reference to resolved.
func Assemble(resolved map[string]Package, meta Metadata) *Document {
	return assembleAt(resolved, meta, time.Now())
}

func assembleAt(resolved map[string]Package, meta Metadata, now time.Time) *Document {
	if resolved == nil {
		resolved = map[string]Package{}
	}
	return &Document{
		Owner:   meta.Owner,
		Repo:    meta.Repo,
		Version: SchemaVersion,
		Sha:     meta.Commit,
		Ref:     meta.Branch,
		Job: Job{
			Correlator: meta.Correlator,
			ID:         meta.RunID,
		},
		Detector: Detector{
			Name:    meta.DetectorName,
			Version: meta.DetectorVersion,
			URL:     meta.DetectorURL,
		},
		Scanned: NewTimestamp(now),
		Manifests: map[string]*Manifest{
			ManifestName: {
				Name:     ManifestName,
				File:     File{SourceLocation: ManifestName},
				Resolved: resolved,
			},
		},
	}
}
