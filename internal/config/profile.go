package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	sigsyaml "sigs.k8s.io/yaml"

	"github.com/dirtbike/mkschroot/internal/config/validate"
	"github.com/dirtbike/mkschroot/internal/utils/slice"
)

// Built-in defaults. A run with no profile provisions exactly the classic
// dirtbike build chroot.
const (
	DefaultPrefix      = "dirtbike"
	DefaultSchrootRoot = "/var/lib/schroot/chroots"
	DefaultConfigRoot  = "/etc/schroot/chroot.d"
)

var (
	DefaultIncludes = []string{
		"eatmydata",
		"gdebi-core",
		"software-properties-common",
		"python3.5",
	}

	// Post-bootstrap commands executed in the chroot's source view, in
	// order. Repository policy lives here as data, not in code.
	DefaultPostCommands = []string{
		"add-apt-repository universe",
		"apt-get update",
	}

	DefaultGroups           = []string{"sbuild", "root"}
	DefaultRootGroups       = []string{"sbuild", "root"}
	DefaultSourceRootUsers  = []string{"root"}
	DefaultSourceRootGroups = []string{"root", "sbuild"}
)

// Repository describes one extra apt repository to enable inside the
// provisioned chroot, with an optional detached signing key to install
// into the chroot keyring directory.
type Repository struct {
	Name       string   `yaml:"name" json:"name,omitempty"`
	URL        string   `yaml:"url" json:"url"`
	Suite      string   `yaml:"suite" json:"suite"`
	Components []string `yaml:"components" json:"components,omitempty"`
	KeyURL     string   `yaml:"keyURL" json:"keyURL,omitempty"`
}

// Profile is the provisioning configuration. Every field is optional;
// unset fields take the defaults above.
type Profile struct {
	Prefix           string       `yaml:"prefix" json:"prefix,omitempty"`
	SchrootRoot      string       `yaml:"schrootRoot" json:"schrootRoot,omitempty"`
	ConfigRoot       string       `yaml:"configRoot" json:"configRoot,omitempty"`
	Includes         []string     `yaml:"includes" json:"includes,omitempty"`
	Groups           []string     `yaml:"groups" json:"groups,omitempty"`
	RootGroups       []string     `yaml:"rootGroups" json:"rootGroups,omitempty"`
	SourceRootUsers  []string     `yaml:"sourceRootUsers" json:"sourceRootUsers,omitempty"`
	SourceRootGroups []string     `yaml:"sourceRootGroups" json:"sourceRootGroups,omitempty"`
	PostCommands     []string     `yaml:"postCommands" json:"postCommands,omitempty"`
	Repositories     []Repository `yaml:"repositories" json:"repositories,omitempty"`
}

// Default returns a profile with every field at its built-in default.
func Default() *Profile {
	p := &Profile{}
	p.applyDefaults()
	return p
}

// Load reads, validates and decodes a YAML profile, then fills unset
// fields with defaults.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile %s: %w", path, err)
	}
	return Parse(data)
}

// Parse validates raw profile YAML against the schema and decodes it.
// An empty document yields the default profile.
func Parse(data []byte) (*Profile, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Default(), nil
	}

	jsonData, err := sigsyaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("converting profile to JSON: %w", err)
	}
	if err := validate.ValidateProfileJSON(jsonData); err != nil {
		return nil, fmt.Errorf("validating profile: %w", err)
	}

	p := &Profile{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}

	p.applyDefaults()
	return p, nil
}

func (p *Profile) applyDefaults() {
	if p.Prefix == "" {
		p.Prefix = DefaultPrefix
	}
	if p.SchrootRoot == "" {
		p.SchrootRoot = DefaultSchrootRoot
	}
	if p.ConfigRoot == "" {
		p.ConfigRoot = DefaultConfigRoot
	}
	if len(p.Includes) == 0 {
		p.Includes = append([]string(nil), DefaultIncludes...)
	}
	if len(p.Groups) == 0 {
		p.Groups = append([]string(nil), DefaultGroups...)
	}
	if len(p.RootGroups) == 0 {
		p.RootGroups = append([]string(nil), DefaultRootGroups...)
	}
	if len(p.SourceRootUsers) == 0 {
		p.SourceRootUsers = append([]string(nil), DefaultSourceRootUsers...)
	}
	if len(p.SourceRootGroups) == 0 {
		p.SourceRootGroups = append([]string(nil), DefaultSourceRootGroups...)
	}
	if len(p.PostCommands) == 0 {
		p.PostCommands = append([]string(nil), DefaultPostCommands...)
	}

	p.Includes = slice.Dedup(p.Includes)
	for i := range p.Repositories {
		if len(p.Repositories[i].Components) == 0 {
			p.Repositories[i].Components = []string{"main"}
		}
		p.Repositories[i].Components = slice.Dedup(p.Repositories[i].Components)
	}
}
