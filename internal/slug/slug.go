// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug derives catalog ids from game names and normalizes game URLs
// for duplicate detection.
package slug

import (
	"regexp"
	"strings"
)

var (
	// nonAlphanumericRun matches one or more characters outside [a-z0-9].
	nonAlphanumericRun = regexp.MustCompile(`[^a-z0-9]+`)
	// urlScheme matches a leading http:// or https://.
	urlScheme = regexp.MustCompile(`^https?://`)
)

// Generate derives the catalog id for a game name: the lowercased name with
// every run of non-alphanumeric characters collapsed to a single hyphen.
// Example: "Test Game!!" → "test-game-"
func Generate(name string) string {
	return nonAlphanumericRun.ReplaceAllString(strings.ToLower(name), "-")
}

// NormalizeURL lowercases a URL and strips the scheme, a leading "www." and
// one trailing slash, so that variants of the same address compare equal.
// Example: "https://www.Example.com/" → "example.com"
func NormalizeURL(u string) string {
	result := strings.ToLower(strings.TrimSpace(u))
	result = urlScheme.ReplaceAllString(result, "")
	result = strings.TrimPrefix(result, "www.")
	result = strings.TrimSuffix(result, "/")
	return result
}
