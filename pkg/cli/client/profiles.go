package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"reels-dash-go/pkg/models"
)

// ValidationResult is the server's per-URL verdict plus the two partitions
// derived from it.
type ValidationResult struct {
	Validation  map[string]models.ValidationEntry
	ValidURLs   []string
	InvalidURLs []string
}

// ValidFraction is the share of distinct URLs judged valid
func (r *ValidationResult) ValidFraction() float64 {
	total := len(r.ValidURLs) + len(r.InvalidURLs)
	if total == 0 {
		return 0
	}
	return float64(len(r.ValidURLs)) / float64(total)
}

// ValidateProfiles asks the server to check each profile URL.
func (c *Client) ValidateProfiles(ctx context.Context, urls []string) (*ValidationResult, error) {
	const op = "validate profiles"

	submitted := make([]string, 0, len(urls))
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			submitted = append(submitted, u)
		}
	}
	if len(submitted) == 0 {
		return nil, newValidationError(op, "at least one profile URL is required")
	}

	payload := map[string][]string{"profileUrls": submitted}
	var body json.RawMessage
	if err := c.doJSONRequest(ctx, op, http.MethodPost, "/api/profiles/validate", payload, "validation", &body); err != nil {
		return nil, err
	}

	entries, err := decodeValidation(body)
	if err != nil {
		return nil, newInvalidResponseError(op, "failed to decode validation map", err)
	}
	return partitionValidation(submitted, entries), nil
}

// decodeValidation finds the URL map under a "validation" key, nested or
// not, or takes the object itself. Members that are not entry objects, such
// as a top-level success flag, are ignored.
func decodeValidation(raw json.RawMessage) (map[string]models.ValidationEntry, error) {
	entries := map[string]models.ValidationEntry{}
	if !present(raw) {
		return entries, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, err
	}
	if inner, ok := obj["validation"]; ok && present(inner) {
		return decodeValidation(inner)
	}

	for u, v := range obj {
		v = bytes.TrimSpace(v)
		if len(v) == 0 || v[0] != '{' {
			continue
		}
		var entry models.ValidationEntry
		if err := json.Unmarshal(v, &entry); err != nil {
			continue
		}
		entries[u] = entry
	}
	return entries, nil
}

// partitionValidation splits entries into valid and invalid lists, in
// submitted order without duplicates, then any extra server keys sorted.
func partitionValidation(submitted []string, entries map[string]models.ValidationEntry) *ValidationResult {
	res := &ValidationResult{
		Validation:  entries,
		ValidURLs:   []string{},
		InvalidURLs: []string{},
	}

	seen := make(map[string]bool, len(entries))
	add := func(u string) {
		if seen[u] {
			return
		}
		entry, ok := entries[u]
		if !ok {
			return
		}
		seen[u] = true
		if entry.Valid {
			res.ValidURLs = append(res.ValidURLs, u)
		} else {
			res.InvalidURLs = append(res.InvalidURLs, u)
		}
	}

	for _, u := range submitted {
		add(u)
	}

	var extra []string
	for u := range entries {
		if !seen[u] {
			extra = append(extra, u)
		}
	}
	sort.Strings(extra)
	for _, u := range extra {
		add(u)
	}
	return res
}
