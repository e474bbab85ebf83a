package errors

import (
	"net/url"
	"os"
	"regexp"
	"strings"
)

// ValidateURL validates an article or listing URL.
// It requires an absolute http or https URL with a host.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid URL %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL must include a host: %q", rawURL)
	}

	return nil
}

// attrNameRegex matches Graphviz attribute identifiers.
var attrNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateAttrName validates a styling attribute name that will be written
// into generated DOT source. Names must be plain identifiers so that a
// pass-through option can never break out of the attribute list.
func ValidateAttrName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidOption, "style attribute name cannot be empty")
	}
	if !attrNameRegex.MatchString(name) {
		return New(ErrCodeInvalidOption, "invalid style attribute name: %q", name)
	}
	return nil
}

// ValidateDir checks that dir names an existing directory.
// The directory is never created.
func ValidateDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return New(ErrCodeInvalidPath, "directory cannot be empty")
	}
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return New(ErrCodeInvalidPath, "directory does not exist: %s", dir)
	}
	if err != nil {
		return Wrap(ErrCodeInvalidPath, err, "stat %s", dir)
	}
	if !info.IsDir() {
		return New(ErrCodeInvalidPath, "not a directory: %s", dir)
	}
	return nil
}
