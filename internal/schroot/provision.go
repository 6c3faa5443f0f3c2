package schroot

import (
	"fmt"
	"strings"

	"github.com/dirtbike/mkschroot/internal/aptrepo"
	"github.com/dirtbike/mkschroot/internal/config"
	"github.com/dirtbike/mkschroot/internal/utils/logger"
	"github.com/dirtbike/mkschroot/internal/utils/system"
)

// Provisioner creates one schroot build environment end to end: identity
// from the host, chroot.d config, backing directory, debootstrap, extra
// repositories, post-setup commands in the source view.
type Provisioner struct {
	Host    system.Host
	Exec    Executor
	Profile *config.Profile

	id  Identity
	dir string
}

// NewProvisioner wires the production host queries and shell executor.
func NewProvisioner(profile *config.Profile) *Provisioner {
	return &Provisioner{
		Host:    system.DebianHost{},
		Exec:    ShellExecutor{},
		Profile: profile,
	}
}

// step pairs a name with one stage of the provisioning pipeline.
type step struct {
	name string
	run  func() error
}

// Provision runs the full pipeline. The first failing step aborts the
// rest; whatever was created up to that point stays in place and must be
// cleaned up manually before a retry.
func (p *Provisioner) Provision() error {
	log := logger.Logger()

	steps := []step{
		{"compute identity", p.computeIdentity},
		{"write schroot config", p.writeConfig},
		{"create target directory", p.createTargetDir},
		{"bootstrap filesystem", p.bootstrap},
		{"enable extra repositories", p.installExtraRepos},
		{"run post-setup commands", p.runPostCommands},
	}

	for _, s := range steps {
		if err := s.run(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}

	log.Infof("Provisioned schroot %s at %s", p.id.Name(), p.dir)
	return nil
}

// ChrootName returns the computed identifier, or "" before Provision has
// reached the identity step.
func (p *Provisioner) ChrootName() string {
	if p.id == (Identity{}) {
		return ""
	}
	return p.id.Name()
}

// ChrootDir returns the backing directory, or "" before Provision has
// reached the identity step.
func (p *Provisioner) ChrootDir() string {
	return p.dir
}

func (p *Provisioner) computeIdentity() error {
	log := logger.Logger()

	arch, err := p.Host.Architecture()
	if err != nil {
		return err
	}
	codename, err := p.Host.Codename()
	if err != nil {
		return err
	}

	p.id = Identity{Prefix: p.Profile.Prefix, Codename: codename, Arch: arch}
	p.dir = p.id.Dir(p.Profile.SchrootRoot)
	log.Infof("Provisioning %s (directory %s)", p.id.Name(), p.dir)
	return nil
}

func (p *Provisioner) writeConfig() error {
	conf := NewConfFile(p.id, p.dir, p.Profile)
	path := conf.Path(p.Profile.ConfigRoot)

	// tee truncates, so an existing config for the same identity is
	// silently replaced.
	if _, err := p.Exec.RunWithInput(conf.Render(), "tee "+path, true); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func (p *Provisioner) createTargetDir() error {
	if _, err := p.Exec.Run("mkdir -p "+p.dir, true); err != nil {
		return fmt.Errorf("creating %s: %w", p.dir, err)
	}
	return nil
}

func (p *Provisioner) bootstrap() error {
	cmd := fmt.Sprintf("debootstrap --include=%s %s %s",
		strings.Join(p.Profile.Includes, ","), p.id.Codename, p.dir)
	if _, err := p.Exec.RunStreaming(cmd, true); err != nil {
		return fmt.Errorf("bootstrapping %s: %w", p.dir, err)
	}
	return nil
}

func (p *Provisioner) installExtraRepos() error {
	return aptrepo.Install(p.dir, p.Profile.Repositories, p.Exec)
}

func (p *Provisioner) runPostCommands() error {
	log := logger.Logger()

	if !p.Exec.CommandExists("add-apt-repository", p.dir) {
		log.Warnf("add-apt-repository not found in %s; post-setup commands may fail", p.dir)
	}

	for _, cmd := range p.Profile.PostCommands {
		full := fmt.Sprintf("schroot -u root -c %s -- %s", p.id.SourceContext(), cmd)
		if _, err := p.Exec.Run(full, true); err != nil {
			return fmt.Errorf("running %q in %s: %w", cmd, p.id.SourceContext(), err)
		}
	}
	return nil
}
