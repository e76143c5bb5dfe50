// Package rules provides functionality for loading search and replace rules.
// It supports JSON, YAML and TOML rule files, converting them into internal
// data structures used by the pattern builder and the rewrite engine, with
// validation that rejects bad input before any target file is touched.
package rules

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"urimap/internal/errors"
)

// Protocol identifies the URI scheme used when formatting replacement URIs.
// Two members are not real schemes: ssh-colon produces SCP-style
// "user@host:path" URIs and relative produces bare "prefix/path" references.
type Protocol string

// Recognized protocol values. Any other value in a rules file or on the
// command line is rejected during validation.
const (
	ProtocolGit      Protocol = "git"
	ProtocolSSH      Protocol = "ssh"
	ProtocolHTTP     Protocol = "http"
	ProtocolHTTPS    Protocol = "https"
	ProtocolSSHColon Protocol = "ssh-colon"
	ProtocolFile     Protocol = "file"
	ProtocolRelative Protocol = "relative"
)

var validProtocols = []Protocol{
	ProtocolGit,
	ProtocolSSH,
	ProtocolHTTP,
	ProtocolHTTPS,
	ProtocolSSHColon,
	ProtocolFile,
	ProtocolRelative,
}

// Valid reports whether p is one of the recognized protocol values.
func (p Protocol) Valid() bool {
	for _, v := range validProtocols {
		if p == v {
			return true
		}
	}
	return false
}

// ValidProtocolNames returns the recognized protocol values as strings,
// in a stable order suitable for help text and error messages.
func ValidProtocolNames() []string {
	names := make([]string, len(validProtocols))
	for i, p := range validProtocols {
		names[i] = string(p)
	}
	return names
}

// Search holds the regex fragments matched against existing URIs.
// Both fragments are spliced verbatim into a larger expression by the
// pattern builder and must not contain anchors like '^' or '$'.
type Search struct {
	Hostname string `json:"hostname" yaml:"hostname" toml:"hostname"`
	Path     string `json:"path" yaml:"path" toml:"path"`
}

// Replace describes how matched URIs are rebuilt. Username is a pointer so
// that an absent username can be distinguished from an empty one; when nil,
// no "user@" part is emitted.
type Replace struct {
	Hostname      string            `json:"hostname" yaml:"hostname" toml:"hostname"`
	Username      *string           `json:"username" yaml:"username" toml:"username"`
	Protocol      Protocol          `json:"protocol" yaml:"protocol" toml:"protocol"`
	Substitutions map[string]string `json:"substitutions" yaml:"substitutions" toml:"substitutions"`
}

// Rules is the complete search/replace specification loaded from a rules file.
// Instances are immutable after loading.
type Rules struct {
	Search  Search  `json:"search" yaml:"search" toml:"search"`
	Replace Replace `json:"replace" yaml:"replace" toml:"replace"`
}

// Load reads and parses a rules file, dispatching on the file extension.
// JSON is the default format; .yaml/.yml and .toml files are also accepted.
// The parsed rules are validated before being returned, so a successful
// Load guarantees a usable specification.
func Load(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFileError(path, err)
	}

	var r Rules
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &r); err != nil {
			return nil, errors.NewRulesError(path, "failed to parse YAML", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &r); err != nil {
			return nil, errors.NewRulesError(path, "failed to parse TOML", err)
		}
	default:
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, errors.NewRulesError(path, "failed to parse JSON", err)
		}
	}

	if err := r.Validate(); err != nil {
		return nil, errors.NewRulesError(path, err.Error(), err)
	}

	return &r, nil
}

// Validate checks the loaded rules for structural problems. It requires both
// search fragments and the substitution table, and rejects unknown protocol
// values. The replace hostname, username and protocol may be empty here
// because each can be supplied on the command line instead; the final
// resolved values are checked again before any rewrite begins.
func (r *Rules) Validate() error {
	if r.Search.Hostname == "" {
		return fmt.Errorf("search.hostname is required")
	}
	if r.Search.Path == "" {
		return fmt.Errorf("search.path is required")
	}
	if r.Replace.Substitutions == nil {
		return fmt.Errorf("replace.substitutions is required")
	}
	if r.Replace.Protocol != "" && !r.Replace.Protocol.Valid() {
		return fmt.Errorf("replace.protocol %q is invalid (valid protocols: %s)",
			r.Replace.Protocol, strings.Join(ValidProtocolNames(), ", "))
	}
	return nil
}

// NewPath looks up the replacement path for a project name.
func (r *Rules) NewPath(project string) (string, bool) {
	p, ok := r.Replace.Substitutions[project]
	return p, ok
}
