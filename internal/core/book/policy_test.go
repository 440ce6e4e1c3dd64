// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

package book

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellhq/inkwell/internal/platform/apperr"
)

/*
TestCheckTitlePolicy verifies the banned-phrase deny list, including the
rule that letter case never bypasses it.
*/
func TestCheckTitlePolicy(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		banned bool
	}{
		{"clean_title", "The Long Winter", false},
		{"exact_phrase", "READ THIS NOW!", true},
		{"phrase_lowercased", "read this now!", true},
		{"phrase_mixed_case", "ClIcK hErE for my novel", true},
		{"phrase_embedded", "My memoir: don't miss this one", true},
		{"ellipsis_phrase_exact", "you won't believe... chapter one", true},
		{"ellipsis_phrase_without_dots", "you won't believe what happened", false},
		{"shocking_secret", "The Shocking Secret of Elm Street", true},
		{"free_gift_lowercase", "a free gift for my readers", true},
		{"ultimate_guide", "the ultimate guide to grief", true},
		{"near_miss", "You might not believe this", false},
		{"empty_title", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkTitlePolicy(tt.title)

			if tt.banned {
				require.Error(t, err)
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, apperr.CodeValidation, ae.Code)
				require.Len(t, ae.Details, 1)
				assert.Equal(t, FieldTitle, ae.Details[0].Field)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

/*
TestCheckContentLength verifies the minimum length gate counts Unicode
characters, not bytes.
*/
func TestCheckContentLength(t *testing.T) {
	tests := []struct {
		name    string
		content string
		valid   bool
	}{
		{"empty", "", false},
		{"just_below_minimum", strings.Repeat("a", MinCharacterCount-1), false},
		{"exactly_minimum", strings.Repeat("a", MinCharacterCount), true},
		{"well_above_minimum", strings.Repeat("a", 6000), true},
		// 5000 multibyte runes are fewer than MinCharacterCount bytes
		// would suggest, but must still pass.
		{"multibyte_runes", strings.Repeat("雪", MinCharacterCount), true},
		{"multibyte_below", strings.Repeat("雪", MinCharacterCount-1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkContentLength(tt.content)

			if tt.valid {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
			}
		})
	}
}

/*
TestCheckPublishRate verifies the daily cap boundary.
*/
func TestCheckPublishRate(t *testing.T) {
	assert.NoError(t, checkPublishRate(0))
	assert.NoError(t, checkPublishRate(MaxBooksPerDay-1))

	err := checkPublishRate(MaxBooksPerDay)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeRateLimited))

	// Over the cap is still rate-limited, not an internal error.
	assert.True(t, apperr.IsCode(checkPublishRate(MaxBooksPerDay+3), apperr.CodeRateLimited))
}

/*
TestCheckRequiredFields verifies that every missing field is reported in a
single validation error.
*/
func TestCheckRequiredFields(t *testing.T) {
	t.Run("all_present", func(t *testing.T) {
		assert.NoError(t, checkRequiredFields("Title", "Description", []string{"Fiction"}))
	})

	t.Run("whitespace_is_missing", func(t *testing.T) {
		err := checkRequiredFields("   ", "Description", []string{"Fiction"})
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		require.Len(t, ae.Details, 1)
		assert.Equal(t, FieldTitle, ae.Details[0].Field)
	})

	t.Run("all_missing_reported_together", func(t *testing.T) {
		err := checkRequiredFields("", "", nil)
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Len(t, ae.Details, 3)
	})
}

/*
TestCheckMonetization verifies the price rules for monetized books.
*/
func TestCheckMonetization(t *testing.T) {
	price := 4.99
	negative := -1.0

	assert.NoError(t, checkMonetization(false, nil))
	assert.NoError(t, checkMonetization(true, &price))

	// A stale price on a free book is tolerated here; the service nulls it.
	assert.NoError(t, checkMonetization(false, &price))

	require.Error(t, checkMonetization(true, nil))
	require.Error(t, checkMonetization(true, &negative))
}
