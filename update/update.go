// Package update replaces the running launcher binary with the build
// published at the configured update URL. The remote publishes an MD5 hash
// file next to the binary; matching hashes mean no update.
package update

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fynelabs/selfupdate"

	"launchmc/checksum"
)

const baseName = "launchmc"

// Apply checks the published hash against the running executable and swaps
// the binary in place when they differ. The replacement takes effect on the
// next launch. A missing hash file is treated as no update available.
func Apply(client *http.Client, updateURL string) error {
	if client == nil {
		client = &http.Client{}
	}
	updateURL = strings.TrimSuffix(updateURL, "/")

	exeName, err := os.Executable()
	if err != nil {
		return fmt.Errorf("executable: %w", err)
	}
	myHash, err := checksum.MD5(exeName)
	if err != nil {
		return fmt.Errorf("checksum: %w", err)
	}

	url := fmt.Sprintf("%s/%s-hash.txt", updateURL, baseName)
	log.Debug("checking for self update", "url", url)
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("read %s: %w", url, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		log.Info("no update published, skipping")
		return nil
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("download %s responded %d (not 200)", url, resp.StatusCode)
	}

	remoteHash := strings.TrimSpace(string(data))
	if strings.EqualFold(myHash, remoteHash) {
		log.Info("launcher is up to date")
		return nil
	}

	binary := baseName
	if runtime.GOOS == "windows" {
		binary += ".exe"
	}
	url = fmt.Sprintf("%s/%s", updateURL, binary)
	log.Info("updating launcher", "from", myHash, "to", remoteHash)
	resp, err = client.Get(url)
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return fmt.Errorf("download %s responded %d (not 200)", url, resp.StatusCode)
	}

	err = selfupdate.Apply(resp.Body, selfupdate.Options{})
	if err != nil {
		return fmt.Errorf("apply: %w", err)
	}
	log.Info("update applied, used on next launch")
	return nil
}
