package updater

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/taneba/rome/internal/errs"
)

const (
	repoSlug    = "taneba/rome"
	releasesURL = "https://api.github.com/repos/" + repoSlug + "/releases/latest"
)

// ConfirmFunc asks the user before the binary is replaced.
type ConfirmFunc func(message string) (bool, error)

type githubRelease struct {
	TagName string `json:"tag_name"`
}

// CheckLatestVersion fetches the latest release tag from GitHub.
func CheckLatestVersion() (string, error) {
	req, err := http.NewRequest("GET", releasesURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to check for updates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("failed to parse release info: %w", err)
	}

	return release.TagName, nil
}

// IsNewer returns true if latest is a higher semver than current.
// Both may optionally have a "v" prefix.
func IsNewer(current, latest string) bool {
	cur := parseVersion(current)
	lat := parseVersion(latest)
	if cur == nil || lat == nil {
		return false
	}
	for i := range 3 {
		if lat[i] > cur[i] {
			return true
		}
		if lat[i] < cur[i] {
			return false
		}
	}
	return false
}

// parseVersion strips a "v" prefix and splits "major.minor.patch" into ints.
// Returns nil if parsing fails.
func parseVersion(v string) []int {
	v = strings.TrimPrefix(v, "v")
	parts := strings.SplitN(v, ".", 3)
	if len(parts) != 3 {
		return nil
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil
		}
		nums[i] = n
	}
	return nums
}

// BuildArchiveURL constructs the download URL for the given version/os/arch.
// Version should include the "v" prefix (e.g. "v1.3.0").
func BuildArchiveURL(version, goos, goarch string) string {
	ver := strings.TrimPrefix(version, "v")
	ext := "tar.gz"
	if goos == "windows" {
		ext = "zip"
	}
	return fmt.Sprintf(
		"https://github.com/%s/releases/download/%s/rome_%s_%s_%s.%s",
		repoSlug, version, ver, goos, goarch, ext,
	)
}

// CheckOnly checks for an update and reports status without installing.
func CheckOnly(currentVersion string, w io.Writer) error {
	if currentVersion == "dev" {
		fmt.Fprintf(w, "Running dev build — cannot check for updates\n")
		return nil
	}

	fmt.Fprintf(w, "Checking for updates...\n")

	latest, err := CheckLatestVersion()
	if err != nil {
		return err
	}

	if IsNewer(currentVersion, latest) {
		fmt.Fprintf(w, "Update available: %s → %s\n", currentVersion, latest)
		fmt.Fprintf(w, "Run 'rome update' to install\n")
	} else {
		fmt.Fprintf(w, "Already up-to-date (%s)\n", currentVersion)
	}

	return nil
}

// Update checks for a newer version and, after confirmation, replaces the
// current binary with the release build for this platform.
func Update(currentVersion string, verbose bool, w io.Writer, confirm ConfirmFunc) error {
	if currentVersion == "dev" {
		return fmt.Errorf("cannot update a dev build — install from a release instead")
	}

	fmt.Fprintf(w, "Checking for updates...\n")

	latest, err := CheckLatestVersion()
	if err != nil {
		return err
	}

	if !IsNewer(currentVersion, latest) {
		fmt.Fprintf(w, "Already up-to-date (%s)\n", currentVersion)
		return nil
	}

	fmt.Fprintf(w, "Update available: %s → %s\n", currentVersion, latest)

	if confirm != nil {
		ok, err := confirm(fmt.Sprintf("Install rome %s?", latest))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(w, "Aborting. rome was not updated.\n")
			return nil
		}
	}

	archiveURL := BuildArchiveURL(latest, runtime.GOOS, runtime.GOARCH)
	if verbose {
		fmt.Fprintf(w, "Downloading %s\n", archiveURL)
	}

	binPath, err := install(archiveURL)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrUpdateFailed, err)
	}

	fmt.Fprintf(w, "Updated rome %s → %s (%s)\n", currentVersion, latest, binPath)
	return nil
}

// install downloads the archive, extracts the binary and swaps it in place
// of the running executable. Returns the path of the replaced binary.
func install(archiveURL string) (string, error) {
	tmpDir, err := os.MkdirTemp("", "rome-update-*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(tmpDir)

	archivePath := filepath.Join(tmpDir, "rome-archive")
	if err := downloadFile(archiveURL, archivePath); err != nil {
		return "", err
	}

	binaryName := "rome"
	if runtime.GOOS == "windows" {
		binaryName = "rome.exe"
	}

	extractedPath := filepath.Join(tmpDir, binaryName)
	if runtime.GOOS == "windows" {
		err = extractZip(archivePath, extractedPath, binaryName)
	} else {
		err = extractTarGz(archivePath, extractedPath, binaryName)
	}
	if err != nil {
		return "", err
	}

	currentBin, err := os.Executable()
	if err != nil {
		return "", err
	}
	currentBin, err = filepath.EvalSymlinks(currentBin)
	if err != nil {
		return "", err
	}

	// Preserve permissions from the current binary.
	info, err := os.Stat(currentBin)
	if err != nil {
		return "", err
	}
	if err := os.Chmod(extractedPath, info.Mode()); err != nil {
		return "", err
	}

	// Atomic replace; fall back to a copy when /tmp is on another device.
	if err := os.Rename(extractedPath, currentBin); err != nil {
		if err := copyFile(extractedPath, currentBin); err != nil {
			return "", err
		}
	}

	return currentBin, nil
}

func downloadFile(url, dest string) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download returned status %d", resp.StatusCode)
	}

	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(f, resp.Body)
	return err
}

func extractTarGz(archivePath, destPath, targetName string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if hdr.Typeflag == tar.TypeReg && filepath.Base(hdr.Name) == targetName {
			return writeFileFrom(tr, destPath)
		}
	}

	return fmt.Errorf("binary %q not found in archive", targetName)
}

func extractZip(archivePath, destPath, targetName string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		if filepath.Base(f.Name) != targetName {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		defer rc.Close()
		return writeFileFrom(rc, destPath)
	}

	return fmt.Errorf("binary %q not found in archive", targetName)
}

func writeFileFrom(r io.Reader, dest string) error {
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o755)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, r)
	return err
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
