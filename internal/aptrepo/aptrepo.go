package aptrepo

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/dirtbike/mkschroot/internal/config"
	"github.com/dirtbike/mkschroot/internal/utils/logger"
	"github.com/dirtbike/mkschroot/internal/utils/network"
)

const (
	// KeyringDir is where signing keys land inside the chroot.
	KeyringDir = "/usr/share/keyrings"

	// SourcesPath is the sources.list.d fragment written inside the chroot.
	SourcesPath = "/etc/apt/sources.list.d/mkschroot-extra.list"
)

// Runner executes host commands for repository installation. The
// provisioner's shell executor satisfies it.
type Runner interface {
	Run(cmd string, sudo bool) (string, error)
	RunWithInput(input, cmd string, sudo bool) (string, error)
}

// KeyFileName returns the keyring filename for a repository's signing key.
func KeyFileName(repo config.Repository) string {
	base := path.Base(repo.KeyURL)
	if !strings.HasSuffix(base, ".gpg") {
		base += ".gpg"
	}
	return base
}

// SourcesFragment renders the sources.list.d content for the given
// repositories.
func SourcesFragment(repos []config.Repository) string {
	var b strings.Builder
	b.WriteString("# Package repositories generated from provisioning profile\n")
	for _, repo := range repos {
		components := strings.Join(repo.Components, " ")
		if repo.KeyURL != "" {
			fmt.Fprintf(&b, "deb [signed-by=%s] %s %s %s\n",
				path.Join(KeyringDir, KeyFileName(repo)), repo.URL, repo.Suite, components)
		} else {
			fmt.Fprintf(&b, "deb %s %s %s\n", repo.URL, repo.Suite, components)
		}
	}
	return b.String()
}

// FetchKeys downloads each repository's signing key into destDir. It shows
// a single progress bar tracking keys completed vs total.
func FetchKeys(repos []config.Repository, destDir string) error {
	log := logger.Logger()

	var withKeys []config.Repository
	for _, repo := range repos {
		if repo.KeyURL != "" {
			withKeys = append(withKeys, repo)
		}
	}
	if len(withKeys) == 0 {
		return nil
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("creating key directory %s: %w", destDir, err)
	}

	bar := progressbar.NewOptions(len(withKeys),
		progressbar.OptionFullWidth(),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetDescription("fetching signing keys"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(100*time.Millisecond),
	)
	defer bar.Finish()

	client := network.NewSecureHTTPClient()
	for _, repo := range withKeys {
		bar.Describe(fmt.Sprintf("fetching %s", KeyFileName(repo)))

		err := func() error {
			resp, err := client.Get(repo.KeyURL)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != 200 {
				return fmt.Errorf("bad status: %s", resp.Status)
			}

			out, err := os.Create(filepath.Join(destDir, KeyFileName(repo)))
			if err != nil {
				return err
			}
			defer out.Close()

			_, err = io.Copy(out, resp.Body)
			return err
		}()
		if err != nil {
			return fmt.Errorf("downloading signing key %s: %w", repo.KeyURL, err)
		}

		log.Debugf("Fetched signing key %s", repo.KeyURL)
		bar.Add(1)
	}

	return nil
}

// Install fetches the signing keys, places them in the chroot's keyring
// directory and writes the sources.list.d fragment into the chroot tree.
// A profile without extra repositories makes this a no-op.
func Install(chrootDir string, repos []config.Repository, runner Runner) error {
	log := logger.Logger()
	if len(repos) == 0 {
		return nil
	}

	keyDir, err := os.MkdirTemp("", "mkschroot-keys-")
	if err != nil {
		return fmt.Errorf("creating temporary key directory: %w", err)
	}
	defer os.RemoveAll(keyDir)

	if err := FetchKeys(repos, keyDir); err != nil {
		return err
	}

	for _, repo := range repos {
		if repo.KeyURL == "" {
			continue
		}
		src := filepath.Join(keyDir, KeyFileName(repo))
		dst := filepath.Join(chrootDir, KeyringDir, KeyFileName(repo))
		if _, err := runner.Run(fmt.Sprintf("install -D -m 0644 %s %s", src, dst), true); err != nil {
			return fmt.Errorf("installing signing key %s: %w", KeyFileName(repo), err)
		}
	}

	fragment := SourcesFragment(repos)
	dst := filepath.Join(chrootDir, SourcesPath)
	if _, err := runner.RunWithInput(fragment, "tee "+dst, true); err != nil {
		return fmt.Errorf("writing sources fragment %s: %w", dst, err)
	}

	log.Infof("Enabled %d extra package repositories in %s", len(repos), chrootDir)
	return nil
}
