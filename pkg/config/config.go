// Package config builds run metadata from the environment of a workflow run.
//
// Values are looked up through a [Source], so the rest of the program never
// touches the process environment directly. Sources can be layered with
// [Chain]; the CLI uses, highest priority first:
//
//	config.Chain(config.Env(), dotenvSource, fileSource)
//
// A key that is set to an empty string counts as present.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/swiftdeps/pkg/errors"
	"github.com/matzehuels/swiftdeps/pkg/submission"
)

// Environment keys read by [Load].
const (
	KeyOwner            = "OWNER"
	KeyRepo             = "REPO"
	KeyBranch           = "BRANCH"
	KeyCommit           = "COMMIT"
	KeyCorrelator       = "CORRELATOR"
	KeyRunID            = "RUN_ID"
	KeyAction           = "GITHUB_ACTION"
	KeyActionRef        = "GITHUB_ACTION_REF"
	KeyActionRepository = "GITHUB_ACTION_REPOSITORY"
	KeyServerURL        = "GITHUB_SERVER_URL"

	// KeyToken is only needed for submission and is never required by Load.
	KeyToken = "GITHUB_TOKEN"
)

// requiredKeys lists every key Load needs, in reporting order.
var requiredKeys = []string{
	KeyOwner, KeyRepo, KeyBranch, KeyCommit, KeyCorrelator, KeyRunID,
	KeyAction, KeyActionRef, KeyActionRepository, KeyServerURL,
}

// Source looks up a configuration value by environment key.
type Source func(key string) (string, bool)

// Env returns a Source backed by the process environment.
func Env() Source {
	return os.LookupEnv
}

// Map returns a Source backed by m.
func Map(m map[string]string) Source {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

// Chain returns a Source that consults sources in order and returns the
// first hit. Nil sources are skipped.
func Chain(sources ...Source) Source {
	return func(key string) (string, bool) {
		for _, src := range sources {
			if src == nil {
				continue
			}
			if v, ok := src(key); ok {
				return v, true
			}
		}
		return "", false
	}
}

// DotEnv reads KEY=value pairs from a dotenv file without modifying the
// process environment.
func DotEnv(path string) (Source, error) {
	m, err := godotenv.Read(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeConfiguration, err, "read env file %s", path)
	}
	return Map(m), nil
}

// fileConfig is the layout accepted by [File].
type fileConfig struct {
	Owner            *string `toml:"owner" yaml:"owner"`
	Repo             *string `toml:"repo" yaml:"repo"`
	Branch           *string `toml:"branch" yaml:"branch"`
	Commit           *string `toml:"commit" yaml:"commit"`
	Correlator       *string `toml:"correlator" yaml:"correlator"`
	RunID            *string `toml:"run_id" yaml:"run_id"`
	Action           *string `toml:"action" yaml:"action"`
	ActionRef        *string `toml:"action_ref" yaml:"action_ref"`
	ActionRepository *string `toml:"action_repository" yaml:"action_repository"`
	ServerURL        *string `toml:"server_url" yaml:"server_url"`
}

// File reads run metadata from a TOML file such as:
//
//	owner = "octo"
//	repo = "app"
//	server_url = "https://github.com"
//	action_repository = "octo/swiftdeps-action"
//
// Files ending in .yaml or .yml are read as YAML with the same keys.
// Unknown keys are rejected.
func File(path string) (Source, error) {
	var (
		fc  fileConfig
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAML(path, &fc)
	default:
		err = decodeTOML(path, &fc)
	}
	if err != nil {
		return nil, err
	}

	m := make(map[string]string)
	for key, val := range map[string]*string{
		KeyOwner:            fc.Owner,
		KeyRepo:             fc.Repo,
		KeyBranch:           fc.Branch,
		KeyCommit:           fc.Commit,
		KeyCorrelator:       fc.Correlator,
		KeyRunID:            fc.RunID,
		KeyAction:           fc.Action,
		KeyActionRef:        fc.ActionRef,
		KeyActionRepository: fc.ActionRepository,
		KeyServerURL:        fc.ServerURL,
	} {
		if val != nil {
			m[key] = *val
		}
	}
	return Map(m), nil
}

func decodeTOML(path string, fc *fileConfig) error {
	md, err := toml.DecodeFile(path, fc)
	if err != nil {
		return errs.Wrap(errs.ErrCodeConfiguration, err, "read config file %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errs.New(errs.ErrCodeConfiguration, "config file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func decodeYAML(path string, fc *fileConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errs.Wrap(errs.ErrCodeConfiguration, err, "read config file %s", path)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// An empty document leaves every key unset.
	if err := dec.Decode(fc); err != nil && len(bytes.TrimSpace(data)) > 0 {
		return errs.Wrap(errs.ErrCodeConfiguration, err, "config file %s", path)
	}
	return nil
}

// Config is the resolved configuration of one run.
type Config struct {
	Metadata submission.Metadata
}

// Load resolves every required key from src. If any are absent it returns a
// single CONFIGURATION_ERROR naming all of them.
func Load(src Source) (*Config, error) {
	vals := make(map[string]string, len(requiredKeys))
	var missing []string
	for _, key := range requiredKeys {
		v, ok := src(key)
		if !ok {
			missing = append(missing, key)
			continue
		}
		vals[key] = v
	}
	if len(missing) > 0 {
		return nil, errs.New(errs.ErrCodeConfiguration, "incomplete environment: missing %s", strings.Join(missing, ", "))
	}

	return &Config{
		Metadata: submission.Metadata{
			Owner:           vals[KeyOwner],
			Repo:            vals[KeyRepo],
			Branch:          vals[KeyBranch],
			Commit:          vals[KeyCommit],
			Correlator:      vals[KeyCorrelator],
			RunID:           vals[KeyRunID],
			DetectorName:    submission.DetectorNameFrom(vals[KeyAction]),
			DetectorVersion: vals[KeyActionRef],
			DetectorURL:     submission.DetectorURLFrom(vals[KeyServerURL], vals[KeyActionRepository]),
		},
	}, nil
}
