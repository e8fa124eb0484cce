package cordova

import (
	"fmt"
	"github.com/Masterminds/semver/v3"
	"regexp"
	"strings"
)

// The output of "cordova platform ls" is expected to consist of exactly two lines, e.g.:
//
//	Installed platforms: android 7.0.0, ios 4.5.4
//	Available platforms: amazon-fireos ~3.6.3, blackberry10 ~3.8.0, browser ~4.1.0
//
// Newer cordova versions print a multi-line layout which is not understood here.
var (
	installedPlatformsRegex = regexp.MustCompile(`[,:]\s(\w+)\s\d+`)
	availablePlatformsRegex = regexp.MustCompile(`[,:]\s(\w+)\s`)
	platformVersionRegex    = regexp.MustCompile(`[,:]\s(\w+)\s(\d[^\s,]*)`)

	lineSplitRegex         = regexp.MustCompile(`\r\n|\r|\n`)
	trailingLineBreakRegex = regexp.MustCompile(`(\r\n|\r|\n)$`)
)

type Platform struct {
	Name       string          `json:"name"`
	RawVersion string          `json:"version"`
	Version    *semver.Version `json:"-"`
}

func splitListingLines(raw []byte) ([]string, error) {
	s := string(raw)
	// a single trailing line break does not start another line
	if loc := trailingLineBreakRegex.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}
	lines := lineSplitRegex.Split(s, -1)
	if len(lines) < 2 {
		return nil, fmt.Errorf("expected at least 2 lines, got %d", len(lines))
	}
	return lines, nil
}

func findAllGroups(r *regexp.Regexp, s string) []string {
	ret := []string{}
	for _, m := range r.FindAllStringSubmatch(s, -1) {
		ret = append(ret, m[1])
	}
	return ret
}

// ParsePlatformListing extracts the installed (first line) and available (second line)
// platform names. Lines without matches result in empty lists.
func ParsePlatformListing(raw []byte) ([]string, []string, error) {
	lines, err := splitListingLines(raw)
	if err != nil {
		return nil, nil, err
	}

	installed := findAllGroups(installedPlatformsRegex, lines[0])
	available := findAllGroups(availablePlatformsRegex, lines[1])
	return installed, available, nil
}

// ParsePlatformVersions extracts the installed platforms together with their versions. Versions
// that are not valid semver are kept as RawVersion only.
func ParsePlatformVersions(raw []byte) ([]Platform, error) {
	lines, err := splitListingLines(raw)
	if err != nil {
		return nil, err
	}

	ret := []Platform{}
	for _, m := range platformVersionRegex.FindAllStringSubmatch(lines[0], -1) {
		p := Platform{
			Name:       m[1],
			RawVersion: strings.TrimSpace(m[2]),
		}
		v, err := semver.NewVersion(p.RawVersion)
		if err == nil {
			p.Version = v
		}
		ret = append(ret, p)
	}
	return ret, nil
}
