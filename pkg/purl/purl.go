// Package purl encodes and decodes Swift package identifiers in package-URL
// form:
//
//	pkg:swift/<source>/<name>@<version>
//
// An [Identifier] is derived either by parsing a conforming string with
// [Parse] or from a dependency's source URL with [FromURL]. Identifiers
// marshal to and from JSON as their canonical string.
package purl

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

const (
	// Scheme is the fixed package-URL scheme.
	Scheme = "pkg"
	// TypeSwift tags identifiers as belonging to the Swift ecosystem.
	TypeSwift = "swift"

	// localHost stands in for the host of URLs that have none (local path
	// dependencies).
	localHost = "localhost"

	gitSuffix = ".git"
)

// prefix is the literal every decodable identifier starts with.
const prefix = Scheme + ":" + TypeSwift + "/"

// Identifier names a package by ecosystem, source location, name and version.
// The zero value is not meaningful; use [New], [Parse] or [FromURL].
type Identifier struct {
	Scheme  string
	Type    string
	Source  string // registry host plus path, e.g. "github.com/apple"
	Name    string
	Version string
}

// New returns a Swift identifier for the given source, name and version.
func New(source, name, version string) Identifier {
	return Identifier{
		Scheme:  Scheme,
		Type:    TypeSwift,
		Source:  source,
		Name:    name,
		Version: version,
	}
}

// String returns the canonical form scheme:type/source/name@version.
func (id Identifier) String() string {
	return id.Scheme + ":" + id.Type + "/" + id.Source + "/" + id.Name + "@" + id.Version
}

// Parse decodes s into an Identifier. The source runs up to the first "/",
// the name up to the next "@", and the version is the remainder; all three
// must be non-empty. The name may itself contain "/". Parse reports false
// when s does not match; a mismatch is not an error.
func Parse(s string) (Identifier, bool) {
	rest, ok := strings.CutPrefix(s, prefix)
	if !ok {
		return Identifier{}, false
	}
	source, rest, ok := strings.Cut(rest, "/")
	if !ok || source == "" {
		return Identifier{}, false
	}
	name, version, ok := strings.Cut(rest, "@")
	if !ok || name == "" || version == "" {
		return Identifier{}, false
	}
	return New(source, name, version), true
}

// FromURL derives an identifier from a package's source URL. The source is
// the host followed by the URL path with its last segment removed; the name
// is that last segment without a trailing ".git". URLs without a host use
// "localhost". Nothing else is normalized.
func FromURL(u *url.URL, version string) Identifier {
	host := u.Hostname()
	if host == "" {
		host = localHost
	}

	p := u.Path
	dir, last := "", p
	switch i := strings.LastIndex(p, "/"); {
	case i == 0:
		dir, last = "/", p[1:]
	case i > 0:
		dir, last = p[:i], p[i+1:]
	}

	return New(host+dir, strings.TrimSuffix(last, gitSuffix), version)
}

// scpLike matches git's scp-style shorthand user@host:path.
var scpLike = regexp.MustCompile(`^([^@/:]+)@([^@/:]+):(.*)$`)

// ParseURL parses a dependency source URL. Empty strings and strings holding
// whitespace or control characters are rejected along with anything
// net/url refuses. The scp-style form git@github.com:org/A.git is read as
// ssh://git@github.com/org/A.git.
func ParseURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, fmt.Errorf("empty URL")
	}
	if strings.ContainsFunc(raw, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	}) {
		return nil, fmt.Errorf("URL %q contains whitespace or control characters", raw)
	}
	if !strings.Contains(raw, "://") {
		if m := scpLike.FindStringSubmatch(raw); m != nil {
			return url.Parse("ssh://" + m[1] + "@" + m[2] + "/" + strings.TrimPrefix(m[3], "/"))
		}
	}
	return url.Parse(raw)
}

// MarshalText implements encoding.TextMarshaler.
func (id Identifier) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unlike [Parse], a
// non-conforming string is an error here.
func (id *Identifier) UnmarshalText(text []byte) error {
	parsed, ok := Parse(string(text))
	if !ok {
		return fmt.Errorf("malformed package URL %q", text)
	}
	*id = parsed
	return nil
}
