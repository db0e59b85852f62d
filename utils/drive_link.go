package utils

import (
	"net/url"
	"regexp"
	"strings"
)

var driveFilePathRegex = regexp.MustCompile(`/(?:file/d|d)/([a-zA-Z0-9_-]{10,})`)

// DriveFileID extracts the file id from a Google Drive share link. Supported
// shapes are /file/d/{id}/view, /open?id={id} and /uc?id={id}.
func DriveFileID(link string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || u.Host == "" {
		return "", false
	}
	host := strings.ToLower(u.Host)
	if host != "drive.google.com" && host != "docs.google.com" {
		return "", false
	}

	if m := driveFilePathRegex.FindStringSubmatch(u.Path); m != nil {
		return m[1], true
	}
	if id := u.Query().Get("id"); id != "" {
		return id, true
	}
	return "", false
}
