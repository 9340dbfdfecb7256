// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings,
// with uniqueness resolution against an existing-slug lookup.
package slug

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, space, or hyphen.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// whitespaceRun collapses consecutive whitespace into one hyphen.
	whitespaceRun = regexp.MustCompile(`\s+`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	result := strings.ToLower(s)
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = whitespaceRun.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// ExistsFunc reports whether a candidate slug is already taken. It must
// reflect the persisted state at call time.
type ExistsFunc func(candidate string) (bool, error)

// Unique generates a slug from text and resolves collisions by appending
// "-1", "-2", ... to the base slug, returning the first untaken candidate.
//
// The check-then-use here is racy under concurrent writers; callers rely on
// the storage layer's unique constraint to catch a lost race.
func Unique(text string, exists ExistsFunc) (string, error) {
	base := Generate(text)
	candidate := base
	for counter := 1; ; counter++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", fmt.Errorf("slug exists check: %w", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}
