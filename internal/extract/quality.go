package extract

import (
	"fmt"
	"strings"

	"github.com/akashdoifode13/WorldSense/internal/types"
)

const (
	// MinTitleLen is the shortest title considered real content.
	MinTitleLen = 10

	// MaxDescriptionLen is where the description gets truncated.
	MaxDescriptionLen = 300

	// MinDescriptionLen is the shortest meaningful description after
	// truncation.
	MinDescriptionLen = 50
)

// junkTitles are titles that indicate a parsing failure or a
// placeholder page rather than an article.
var junkTitles = map[string]struct{}{
	"msn":           {},
	"home":          {},
	"news":          {},
	"error":         {},
	"404":           {},
	"not found":     {},
	"access denied": {},
}

// CheckTitle rejects empty, too-short, and known junk titles.
func CheckTitle(title string) error {
	if len(title) < MinTitleLen {
		return fmt.Errorf("%w: title too short (%d chars)", types.ErrLowQuality, len(title))
	}
	if _, junk := junkTitles[strings.ToLower(strings.TrimSpace(title))]; junk {
		return fmt.Errorf("%w: junk title %q", types.ErrLowQuality, title)
	}
	return nil
}

// CheckDescription rejects descriptions that carry no real content.
func CheckDescription(desc string) error {
	if len(desc) < MinDescriptionLen {
		return fmt.Errorf("%w: description too short (%d chars)", types.ErrLowQuality, len(desc))
	}
	return nil
}

// Truncate caps s at max characters, appending an ellipsis when the
// text was cut.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
