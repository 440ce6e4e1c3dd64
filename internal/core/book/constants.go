// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

package book

import "time"

// # Publishing Policy Constraints

const (
	// MaxBooksPerDay caps how many publish actions a writer may perform in
	// any trailing 24-hour window. Republishing counts again.
	MaxBooksPerDay = 2

	// MinCharacterCount is the minimum content length required to publish.
	MinCharacterCount = 5000

	// PublishWindow is the trailing window the rate limit is counted over.
	PublishWindow = 24 * time.Hour
)

// # Lifecycle Constraints

const (
	// DeletionGracePeriod is how long a soft-deleted book remains
	// restorable before the purge permanently removes it.
	DeletionGracePeriod = 10 * 24 * time.Hour
)

// # Content Defaults

const (
	// DefaultLanguage is applied when a manuscript omits its language.
	DefaultLanguage = "English"

	// DefaultLicense is applied when a manuscript omits its license.
	DefaultLicense = "All rights reserved"
)

// bannedTitlePhrases is the static deny-list of clickbait phrases that may
// not appear in a published title. Matching is case-insensitive substring.
var bannedTitlePhrases = []string{
	"READ THIS NOW!",
	"You won't believe...",
	"Shocking secret",
	"This will blow your mind",
	"Must read!",
	"What happens next will shock you",
	"Top 10 reasons",
	"The ultimate guide",
	"Don't miss this",
	"Guaranteed results",
	"Click here",
	"Buy now",
	"MUST READ THIS NOW!",
	"FREE GIFT",
	"Limited time offer",
	"Act fast",
	"Last chance",
	"Exclusive deal",
	"Unbelievable offer",
}
