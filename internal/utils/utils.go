package utils

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// UriToPath converts a file URI into a filesystem path. URIs with any other
// scheme (virtual filesystems) return an error.
func UriToPath(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", err
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("unsupported URI scheme %q", u.Scheme)
	}
	return filepath.FromSlash(u.Path), nil
}

func PathToURI(path string) string {
	uri := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return uri.String()
}
