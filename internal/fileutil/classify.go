package fileutil

import (
	"os"
	"strings"
)

// FileExists reports whether path names something other than a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// IsFilePath tells a path from a bare name: "dark" is a name,
// "./brand.css" and "themes/brand.css" are paths.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, `/\`)
}

// IsCSS reports whether s is inline CSS rather than a name or path.
func IsCSS(s string) bool {
	return strings.ContainsAny(s, "{}")
}

// IsURL reports whether s is an http or https URL.
func IsURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
