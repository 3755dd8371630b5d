// Package distro detects the base Linux distribution family the way the
// native-dependency tables expect it: derivatives map to their base (Garuda
// reports "Arch", Linux Mint reports "Debian").
package distro

import (
	"bufio"
	"os"
	"strings"

	"github.com/FyreX-opensource-design/gitpm/domain"
)

const unknownFamily = "Unknown"

// familyNames normalizes os-release identifiers to the family names used as
// keys in package metadata.
var familyNames = map[string]string{
	"arch":      "Arch",
	"archlinux": "Arch",
	"debian":    "Debian",
	"ubuntu":    "Ubuntu",
	"fedora":    "Fedora",
	"rhel":      "RHEL",
	"centos":    "CentOS",
	"opensuse":  "openSUSE",
	"suse":      "openSUSE",
	"sles":      "SLES",
}

// releaseFiles maps legacy distro-specific marker files to families, checked
// in order when os-release is missing.
var releaseFiles = []struct {
	path   string
	family string
}{
	{"/etc/arch-release", "Arch"},
	{"/etc/debian_version", "Debian"},
	{"/etc/fedora-release", "Fedora"},
	{"/etc/redhat-release", "RHEL"},
	{"/etc/SuSE-release", "openSUSE"},
}

// OSReleaseDetector implements domain.DistroDetector by parsing
// /etc/os-release, preferring ID_LIKE (the base distro) over ID.
type OSReleaseDetector struct {
	releasePath string
}

var _ domain.DistroDetector = (*OSReleaseDetector)(nil)

// NewOSReleaseDetector creates a detector reading the standard os-release
// location.
func NewOSReleaseDetector() *OSReleaseDetector {
	return &OSReleaseDetector{releasePath: "/etc/os-release"}
}

// CurrentDistroFamily returns the detected family name, or "Unknown".
func (d *OSReleaseDetector) CurrentDistroFamily() string {
	if family := d.fromOSRelease(); family != "" {
		return family
	}

	for _, rf := range releaseFiles {
		if _, err := os.Stat(rf.path); err == nil {
			return rf.family
		}
	}
	return unknownFamily
}

func (d *OSReleaseDetector) fromOSRelease() string {
	file, err := os.Open(d.releasePath)
	if err != nil {
		return ""
	}
	defer file.Close()

	var id, idLike string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "ID_LIKE="):
			idLike = unquote(strings.TrimPrefix(line, "ID_LIKE="))
			// ID_LIKE can list several parents; the first is the base.
			if fields := strings.Fields(idLike); len(fields) > 0 {
				idLike = fields[0]
			}
		case strings.HasPrefix(line, "ID="):
			id = unquote(strings.TrimPrefix(line, "ID="))
		}
	}

	candidate := idLike
	if candidate == "" {
		candidate = id
	}
	if candidate == "" {
		return ""
	}

	if family, ok := familyNames[strings.ToLower(candidate)]; ok {
		return family
	}
	return strings.ToUpper(candidate[:1]) + strings.ToLower(candidate[1:])
}

func unquote(value string) string {
	return strings.Trim(strings.TrimSpace(value), `"'`)
}
