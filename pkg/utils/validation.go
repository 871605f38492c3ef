package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateURL trims and validates a URL string, returning a normalized value
// or an error if the URL is empty or invalid.
func ValidateURL(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("URL is required")
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid URL: scheme must be http or https")
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid URL: missing host")
	}
	return s, nil
}

// ParseURLList splits free-form input on newlines and commas, trims each
// entry and drops empties. Order and duplicates are kept.
func ParseURLList(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ','
	})
	urls := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			urls = append(urls, f)
		}
	}
	return urls
}

var facebookHosts = map[string]bool{
	"facebook.com":     true,
	"www.facebook.com": true,
	"m.facebook.com":   true,
	"web.facebook.com": true,
	"fb.com":           true,
	"www.fb.com":       true,
}

// ValidateProfileURL checks that raw is an http(s) Facebook profile URL
// with a non-empty path.
func ValidateProfileURL(raw string) error {
	s, err := ValidateURL(raw)
	if err != nil {
		return err
	}
	u, _ := url.Parse(s)
	if !facebookHosts[strings.ToLower(u.Hostname())] {
		return fmt.Errorf("invalid Facebook URL")
	}
	if strings.Trim(u.Path, "/") == "" && u.Query().Get("id") == "" {
		return fmt.Errorf("URL does not point to a profile")
	}
	return nil
}
