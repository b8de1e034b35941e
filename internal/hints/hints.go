// Package hints provides actionable suffixes for common CLI errors.
// A hint is formatted as " (hint: <text>)" and appended to the error line.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-md2deck/internal/fileutil"
)

// IsInContainer detects a Docker container through /.dockerenv.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ciVariables are set by common CI providers.
var ciVariables = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"}

// ForBrowserConnect returns hints for headless Chrome launch failures.
func ForBrowserConnect() string {
	var hints []string

	if (inCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use a local Chrome")
	}
	hints = append(hints, "write .html to skip the browser")

	return format(strings.Join(hints, "; "))
}

// ForTimeout suggests a longer timeout for large decks.
func ForTimeout() string {
	return format("large decks may need a longer --timeout")
}

// ForConfigNotFound suggests --config or a config under ~/.config/go-md2deck/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(slashPath(p), ".config/go-md2deck") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForOutputDirectory suggests checking the output directory.
func ForOutputDirectory() string {
	return format("check the parent directory exists and is writable")
}

// ForOutputFormat lists the supported output extensions.
func ForOutputFormat() string {
	return format("use an output ending in .html, .pdf or .yaml")
}

// ForStyleNotFound lists the available styles.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

func inCI() bool {
	for _, name := range ciVariables {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// slashPath normalizes separators so Windows paths match too.
func slashPath(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return " (hint: " + hint + ")"
}
