package utils

import (
	"net/url"
	"strings"
)

func CorrectURLScheme(URL string) string {
	startURL := strings.TrimSpace(URL)
	if u, err := url.Parse(startURL); err != nil || u.Scheme == "" || u.Host == "" {
		if parsed, err2 := url.Parse("https://" + startURL); err2 == nil {
			startURL = parsed.String()
		}
	}
	return startURL
}

// JoinURLPath appends path to base without doubling or dropping the slash between them.
// Any path prefix already on base is kept.
func JoinURLPath(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// IsAbsoluteURL reports whether URL has both a scheme and a host.
func IsAbsoluteURL(URL string) bool {
	u, err := url.Parse(URL)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
