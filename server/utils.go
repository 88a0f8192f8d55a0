// Generic data manipulation utilities.

package main

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

const (
	// Longest permitted tag name, in bytes after normalization.
	maxTagLength = 96
	// Longest typing preview forwarded to subscribers, in grapheme clusters.
	maxTypingPreviewLen = 120
	// Largest number of media links accepted on one entry.
	maxMediaLinks = 16
)

// timeToMinute rounds a timestamp down to whole-minute granularity. Log
// timelines are kept at minute resolution.
func timeToMinute(t time.Time) time.Time {
	return t.Truncate(time.Minute)
}

// normalizeTagName brings a user-entered tag name to canonical form:
// Unicode NFC, lowercased, surrounding whitespace removed. Returns an empty
// string if the input normalizes to nothing usable.
func normalizeTagName(name string) string {
	name = norm.NFC.String(strings.TrimSpace(name))
	name = strings.ToLower(name)
	if len(name) > maxTagLength {
		name = truncateGraphemes(name, maxTagLength)
	}
	return name
}

// truncateGraphemes shortens a string to at most max grapheme clusters
// without tearing a multi-byte cluster in half.
func truncateGraphemes(str string, max int) string {
	if max <= 0 {
		return ""
	}
	count, offset := 0, 0
	for state, remaining, cluster := -1, str, ""; len(remaining) > 0; {
		cluster, remaining, _, state = uniseg.StepString(remaining, state)
		if count++; count > max {
			return str[:offset]
		}
		offset += len(cluster)
	}
	return str
}

// typingPreview prepares a typing indicator text for fan-out.
func typingPreview(text string) string {
	return truncateGraphemes(text, maxTypingPreviewLen)
}

// parseVersion parses a "major.minor.patch" version string into a packed
// integer, 8 bits per part. Unparceable parts read as zero.
func parseVersion(vers string) int {
	var major, minor, patch int

	parts := strings.SplitN(vers, ".", 3)
	major, _ = strconv.Atoi(parts[0])
	if len(parts) > 1 {
		minor, _ = strconv.Atoi(parts[1])
	}
	if len(parts) > 2 {
		patch, _ = strconv.Atoi(parts[2])
	}
	if major < 0 || major >= 0xff || minor < 0 || minor >= 0xff || patch < 0 || patch >= 0xff {
		return 0
	}
	return major<<16 | minor<<8 | patch
}

// base10Version converts a packed version to a decimal form suitable for
// reporting through an integer expvar, e.g. 0.17.1 -> 1701.
func base10Version(packed int) int64 {
	major := packed >> 16 & 0xff
	minor := packed >> 8 & 0xff
	patch := packed & 0xff
	return int64(major*10000 + minor*100 + patch)
}

// validMediaLinks checks that all links parse as absolute http(s) URLs and
// the list is within bounds.
func validMediaLinks(links []string) bool {
	if len(links) > maxMediaLinks {
		return false
	}
	for _, link := range links {
		u, err := url.Parse(link)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return false
		}
	}
	return true
}
