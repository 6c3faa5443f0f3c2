package schroot

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dirtbike/mkschroot/internal/config"
)

// ConfFile is the schroot chroot.d configuration record for one chroot.
// It is written once per provisioning run and never updated afterwards.
type ConfFile struct {
	Name                string
	Description         string
	Groups              []string
	RootGroups          []string
	Type                string
	Profile             string
	UnionType           string
	Directory           string
	SourceRootUsers     []string
	SourceRootGroups    []string
	PreserveEnvironment bool
}

// NewConfFile builds the configuration record for an identity whose base
// filesystem lives at dir.
func NewConfFile(id Identity, dir string, profile *config.Profile) ConfFile {
	return ConfFile{
		Name:                id.Name(),
		Description:         fmt.Sprintf("%s build chroot for %s/%s", id.Prefix, id.Codename, id.Arch),
		Groups:              profile.Groups,
		RootGroups:          profile.RootGroups,
		Type:                "directory",
		Profile:             "default",
		UnionType:           "overlayfs",
		Directory:           dir,
		SourceRootUsers:     profile.SourceRootUsers,
		SourceRootGroups:    profile.SourceRootGroups,
		PreserveEnvironment: false,
	}
}

// Path returns the configuration file location under the given config root.
func (c ConfFile) Path(configRoot string) string {
	return filepath.Join(configRoot, c.Name)
}

// Render produces the chroot.d file content.
func (c ConfFile) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]\n", c.Name)
	fmt.Fprintf(&b, "description=%s\n", c.Description)
	fmt.Fprintf(&b, "groups=%s\n", strings.Join(c.Groups, ","))
	fmt.Fprintf(&b, "root-groups=%s\n", strings.Join(c.RootGroups, ","))
	fmt.Fprintf(&b, "type=%s\n", c.Type)
	fmt.Fprintf(&b, "profile=%s\n", c.Profile)
	fmt.Fprintf(&b, "union-type=%s\n", c.UnionType)
	fmt.Fprintf(&b, "directory=%s\n", c.Directory)
	fmt.Fprintf(&b, "source-root-users=%s\n", strings.Join(c.SourceRootUsers, ","))
	fmt.Fprintf(&b, "source-root-groups=%s\n", strings.Join(c.SourceRootGroups, ","))
	fmt.Fprintf(&b, "preserve-environment=%t\n", c.PreserveEnvironment)
	return b.String()
}
