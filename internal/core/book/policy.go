// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

package book

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/inkwellhq/inkwell/internal/platform/apperr"
)

// # Publish Policy Rules
//
// Each rule is a pure function of its input so the policy can be tested
// without a store. The service applies them in a fixed fail-fast order:
// banned title, content length, rate limit, ownership, required fields.

// bannedPhraseIn returns the first deny-listed phrase found in the title,
// compared case-insensitively, or "" if the title is clean.
func bannedPhraseIn(title string) string {
	lowered := strings.ToLower(title)
	for _, phrase := range bannedTitlePhrases {
		if strings.Contains(lowered, strings.ToLower(phrase)) {
			return phrase
		}
	}
	return ""
}

// checkTitlePolicy rejects titles containing a banned phrase.
//
// Changing only the letter case of a phrase must not bypass the check.
func checkTitlePolicy(title string) error {
	if phrase := bannedPhraseIn(title); phrase != "" {
		return apperr.ValidationError(
			"Title contains a banned phrase",
			apperr.FieldError{
				Field:   FieldTitle,
				Message: fmt.Sprintf("The phrase %q is not allowed in titles", phrase),
			},
		)
	}
	return nil
}

// checkContentLength rejects manuscripts below the minimum publishable
// length. Length is measured in Unicode characters, not bytes.
func checkContentLength(content string) error {
	count := utf8.RuneCountInString(content)
	if count < MinCharacterCount {
		return apperr.ValidationError(
			"Content is too short to publish",
			apperr.FieldError{
				Field:   FieldContent,
				Message: fmt.Sprintf("Minimum %d characters required, got %d", MinCharacterCount, count),
			},
		)
	}
	return nil
}

// checkPublishRate rejects a publish once the writer has hit the daily cap.
//
// This is the only transient rejection in the policy: the caller may retry
// after the window elapses, so the message carries the count and limit.
func checkPublishRate(publishedInWindow int) error {
	if publishedInWindow >= MaxBooksPerDay {
		return apperr.RateLimited(fmt.Sprintf(
			"Publishing limit reached: %d of %d books in the last 24 hours. Try again once the window elapses.",
			publishedInWindow, MaxBooksPerDay,
		))
	}
	return nil
}

// checkRequiredFields rejects a publish whose merged fields are missing a
// title, description, or genre.
func checkRequiredFields(title, description string, genre []string) error {
	var missing []apperr.FieldError
	if strings.TrimSpace(title) == "" {
		missing = append(missing, apperr.FieldError{Field: FieldTitle, Message: "This field is required to publish"})
	}
	if strings.TrimSpace(description) == "" {
		missing = append(missing, apperr.FieldError{Field: FieldDescription, Message: "This field is required to publish"})
	}
	if len(genre) == 0 {
		missing = append(missing, apperr.FieldError{Field: FieldGenre, Message: "At least one genre is required to publish"})
	}
	if len(missing) > 0 {
		return apperr.ValidationError("Missing required fields", missing...)
	}
	return nil
}

// checkMonetization enforces that a price accompanies monetized books and
// never accompanies free ones.
func checkMonetization(isMonetized bool, price *float64) error {
	if isMonetized && price == nil {
		return apperr.ValidationError(
			"Monetized books require a price",
			apperr.FieldError{Field: FieldPrice, Message: "This field is required when is_monetized is true"},
		)
	}
	if isMonetized && price != nil && *price < 0 {
		return apperr.ValidationError(
			"Price must not be negative",
			apperr.FieldError{Field: FieldPrice, Message: "Must be zero or greater"},
		)
	}
	return nil
}
