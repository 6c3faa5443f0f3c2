package system

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/dirtbike/mkschroot/internal/utils/logger"
	"github.com/dirtbike/mkschroot/internal/utils/shell"
)

var (
	log           = logger.Logger()
	OsReleaseFile = "/etc/os-release"
)

// Host answers the two questions provisioning needs about the machine it
// runs on. The production implementation shells out to dpkg and
// lsb_release; tests substitute fixed strings.
type Host interface {
	// Architecture returns the host package architecture, e.g. "amd64".
	Architecture() (string, error)

	// Codename returns the host distribution release codename, e.g. "focal".
	Codename() (string, error)
}

// DebianHost queries the running system with dpkg and lsb_release.
type DebianHost struct{}

func (DebianHost) Architecture() (string, error) {
	output, err := shell.ExecCmd("dpkg --print-architecture", false, shell.HostPath, nil)
	if err != nil {
		return "", fmt.Errorf("failed to get host architecture: %w", err)
	}
	return singleLine("architecture", output)
}

func (DebianHost) Codename() (string, error) {
	output, err := shell.ExecCmd("lsb_release --codename --short", false, shell.HostPath, nil)
	if err != nil {
		return "", fmt.Errorf("failed to get distribution codename: %w", err)
	}
	return singleLine("codename", output)
}

// singleLine trims the tool output and rejects anything that is not one
// non-empty line.
func singleLine(what, output string) (string, error) {
	trimmed := strings.TrimSpace(output)
	if trimmed == "" {
		return "", fmt.Errorf("%s query returned empty output", what)
	}
	if strings.ContainsAny(trimmed, "\n\r") {
		return "", fmt.Errorf("%s query returned more than one line: %q", what, trimmed)
	}
	return trimmed, nil
}

// OsDistribution contains information about the Linux OS distribution
type OsDistribution struct {
	Name            string   // Distribution name (e.g., "Ubuntu", "Debian GNU/Linux")
	Version         string   // Version (e.g., "22.04", "12")
	ID              string   // Distribution ID (e.g., "ubuntu", "debian")
	IDLike          []string // Related distributions (e.g., ["debian"])
	PackageManagers []string // Package managers (e.g., ["apt", "dpkg"])
}

// DetectOsDistribution detects the underlying Linux OS distribution by
// parsing /etc/os-release
func DetectOsDistribution() (*OsDistribution, error) {
	osInfo := &OsDistribution{}

	if _, err := os.Stat(OsReleaseFile); err != nil {
		return nil, fmt.Errorf("file %s not found: %w", OsReleaseFile, err)
	}

	file, err := os.Open(OsReleaseFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", OsReleaseFile, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), "\"")

		switch key {
		case "NAME":
			osInfo.Name = value
		case "VERSION_ID":
			osInfo.Version = value
		case "ID":
			osInfo.ID = strings.ToLower(value)
		case "ID_LIKE":
			// ID_LIKE can contain multiple space-separated values
			osInfo.IDLike = strings.Fields(value)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", OsReleaseFile, err)
	}

	osInfo.PackageManagers = detectPackageManagers(osInfo.ID, osInfo.IDLike)
	if len(osInfo.PackageManagers) == 0 {
		log.Warnf("Could not determine package manager for distribution: %s (ID: %s)", osInfo.Name, osInfo.ID)
	}

	log.Infof("Detected OS distribution: %s %s (ID: %s, Package Managers: %v)",
		osInfo.Name, osInfo.Version, osInfo.ID, osInfo.PackageManagers)

	return osInfo, nil
}

// detectPackageManagers determines the package managers based on distribution ID
func detectPackageManagers(id string, idLike []string) []string {
	if mgrs := packageManagersForID(id); len(mgrs) > 0 {
		return mgrs
	}
	for _, likeID := range idLike {
		if mgrs := packageManagersForID(likeID); len(mgrs) > 0 {
			return mgrs
		}
	}
	return nil
}

// packageManagersForID returns package managers for a given distribution ID
func packageManagersForID(id string) []string {
	switch strings.ToLower(id) {
	case "ubuntu", "debian", "linuxmint", "pop", "elementary", "kali", "raspbian", "elxr":
		return []string{"apt", "dpkg"}
	case "fedora", "rhel", "centos", "rocky", "almalinux", "oracle":
		return []string{"dnf", "yum", "rpm"}
	case "mariner", "azurelinux":
		return []string{"tdnf", "rpm"}
	default:
		return nil
	}
}

// EnsureDebootstrap verifies the bootstrap tool is present and, when it is
// not, installs it with the host's package manager.
func EnsureDebootstrap() error {
	if shell.IsCommandExist("debootstrap", shell.HostPath) {
		log.Debugf("debootstrap is already installed")
		return nil
	}

	log.Infof("debootstrap not found, detecting OS distribution to install it")
	osInfo, err := DetectOsDistribution()
	if err != nil {
		return fmt.Errorf("failed to detect OS distribution: %w", err)
	}

	var installCmd string
	for _, mgr := range osInfo.PackageManagers {
		switch mgr {
		case "apt":
			if _, err := shell.ExecCmd("apt-get update", true, shell.HostPath, nil); err != nil {
				log.Warnf("Failed to update package list: %v (continuing anyway)", err)
			}
			installCmd = "apt-get install -y debootstrap"
		case "dnf", "yum", "tdnf":
			installCmd = fmt.Sprintf("%s install -y debootstrap", mgr)
		}
		if installCmd != "" {
			break
		}
	}

	if installCmd == "" {
		return fmt.Errorf("no suitable package manager found for distribution: %s", osInfo.Name)
	}

	log.Infof("Installing debootstrap using command: %s", installCmd)
	output, err := shell.ExecCmd(installCmd, true, shell.HostPath, nil)
	if err != nil {
		return fmt.Errorf("failed to install debootstrap: %w\nOutput: %s", err, output)
	}

	if !shell.IsCommandExist("debootstrap", shell.HostPath) {
		return fmt.Errorf("installation completed but debootstrap verification failed")
	}

	log.Infof("Successfully installed debootstrap")
	return nil
}
