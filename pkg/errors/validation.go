package errors

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	// GitHub usernames/orgs: 1-39 alphanumeric or hyphen, not starting with hyphen
	ownerRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,38}$`)
	// GitHub repo names: 1-100 alphanumeric, hyphen, underscore, or dot
	repoRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,100}$`)
)

// ValidateOwner checks that owner is a valid GitHub user or organization name.
func ValidateOwner(owner string) error {
	if !ownerRegex.MatchString(owner) {
		return New(ErrCodeInvalidInput, "invalid owner %q: must be 1-39 alphanumeric characters or hyphens, cannot start with hyphen", owner)
	}
	return nil
}

// ValidateRepo checks that repo is a valid GitHub repository name.
// "." and ".." are rejected since they would alter the request path.
func ValidateRepo(repo string) error {
	if !repoRegex.MatchString(repo) || repo == "." || repo == ".." {
		return New(ErrCodeInvalidInput, "invalid repo %q: must be 1-100 alphanumeric characters, hyphens, underscores, or dots", repo)
	}
	return nil
}

// ValidateServerURL checks that rawURL is an absolute http or https URL with
// a host, as expected for GITHUB_SERVER_URL.
func ValidateServerURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeConfiguration, "server URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeConfiguration, "server URL %q must use http or https scheme", rawURL)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeConfiguration, err, "invalid server URL %q", rawURL)
	}
	if u.Host == "" {
		return New(ErrCodeConfiguration, "server URL %q has no host", rawURL)
	}
	return nil
}
