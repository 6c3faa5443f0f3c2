package schroot

import "path/filepath"

// Identity names one provisioned chroot. The name doubles as the schroot
// configuration section name and as the backing directory name, so it must
// be unique per (codename, arch) pair.
type Identity struct {
	Prefix   string
	Codename string
	Arch     string
}

// Name returns the chroot identifier, e.g. "dirtbike-focal-amd64".
func (id Identity) Name() string {
	return id.Prefix + "-" + id.Codename + "-" + id.Arch
}

// Dir returns the backing directory under the given schroot root.
func (id Identity) Dir(root string) string {
	return filepath.Join(root, id.Name())
}

// SourceContext returns the schroot selector for the unmerged source view.
func (id Identity) SourceContext() string {
	return "source:" + id.Name()
}
