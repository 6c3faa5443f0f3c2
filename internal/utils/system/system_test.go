package system

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSingleLine(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    string
		wantErr bool
	}{
		{"plain value", "amd64", "amd64", false},
		{"trailing newline", "focal\n", "focal", false},
		{"surrounding whitespace", "  arm64  \n", "arm64", false},
		{"empty", "", "", true},
		{"whitespace only", "  \n", "", true},
		{"two lines", "focal\nnoble\n", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := singleLine("test", tt.output)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.output)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("singleLine(%q) = %q, want %q", tt.output, got, tt.want)
			}
		})
	}
}

func writeOsRelease(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "os-release")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing os-release fixture: %v", err)
	}
	prev := OsReleaseFile
	OsReleaseFile = path
	t.Cleanup(func() {
		OsReleaseFile = prev
	})
}

func TestDetectOsDistributionUbuntu(t *testing.T) {
	writeOsRelease(t, `NAME="Ubuntu"
VERSION_ID="20.04"
ID=ubuntu
ID_LIKE=debian
`)

	osInfo, err := DetectOsDistribution()
	if err != nil {
		t.Fatalf("DetectOsDistribution failed: %v", err)
	}
	if osInfo.Name != "Ubuntu" {
		t.Errorf("Name = %q, want Ubuntu", osInfo.Name)
	}
	if osInfo.Version != "20.04" {
		t.Errorf("Version = %q, want 20.04", osInfo.Version)
	}
	if osInfo.ID != "ubuntu" {
		t.Errorf("ID = %q, want ubuntu", osInfo.ID)
	}
	if !reflect.DeepEqual(osInfo.PackageManagers, []string{"apt", "dpkg"}) {
		t.Errorf("PackageManagers = %v, want [apt dpkg]", osInfo.PackageManagers)
	}
}

func TestDetectOsDistributionIDLikeFallback(t *testing.T) {
	writeOsRelease(t, `NAME="Custom Derivative"
VERSION_ID="1.0"
ID=customos
ID_LIKE="debian ubuntu"
`)

	osInfo, err := DetectOsDistribution()
	if err != nil {
		t.Fatalf("DetectOsDistribution failed: %v", err)
	}
	if !reflect.DeepEqual(osInfo.PackageManagers, []string{"apt", "dpkg"}) {
		t.Errorf("PackageManagers = %v, want [apt dpkg] via ID_LIKE", osInfo.PackageManagers)
	}
}

func TestDetectOsDistributionMissingFile(t *testing.T) {
	prev := OsReleaseFile
	OsReleaseFile = filepath.Join(t.TempDir(), "does-not-exist")
	t.Cleanup(func() {
		OsReleaseFile = prev
	})

	if _, err := DetectOsDistribution(); err == nil {
		t.Fatal("expected error for missing os-release file")
	}
}

func TestPackageManagersForID(t *testing.T) {
	if mgrs := packageManagersForID("Debian"); !reflect.DeepEqual(mgrs, []string{"apt", "dpkg"}) {
		t.Errorf("packageManagersForID(Debian) = %v", mgrs)
	}
	if mgrs := packageManagersForID("fedora"); !reflect.DeepEqual(mgrs, []string{"dnf", "yum", "rpm"}) {
		t.Errorf("packageManagersForID(fedora) = %v", mgrs)
	}
	if mgrs := packageManagersForID("unknown"); mgrs != nil {
		t.Errorf("packageManagersForID(unknown) = %v, want nil", mgrs)
	}
}
