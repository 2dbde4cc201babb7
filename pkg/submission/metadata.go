package submission

import "strings"

// Metadata carries everything about the run that the dependency tree cannot
// supply. All fields are required; completeness is checked by whoever builds
// it (see package config).
type Metadata struct {
	Owner      string
	Repo       string
	Branch     string
	Commit     string
	Correlator string
	RunID      string

	DetectorName    string
	DetectorVersion string
	DetectorURL     string
}

// DetectorNameFrom derives the detector name from a workflow action
// identifier by cutting it at the first "_".
func DetectorNameFrom(action string) string {
	name, _, _ := strings.Cut(action, "_")
	return name
}

// DetectorURLFrom joins the server base URL and the action's repository path.
func DetectorURLFrom(serverURL, repository string) string {
	return serverURL + "/" + repository
}
