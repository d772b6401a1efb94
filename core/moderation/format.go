package moderation

import "github.com/tumaini/malengo/core"

// FormatResult is the outcome of a syntactic username check.
type FormatResult struct {
	Valid   bool
	Message string
}

// ValidateUsernameFormat checks a candidate username's length and character
// set. Rules apply in order; the first failure wins. Pure and total.
func ValidateUsernameFormat(username string) FormatResult {
	if len(username) < 3 {
		return FormatResult{Message: "Username must be at least 3 characters long"}
	}
	if len(username) > 20 {
		return FormatResult{Message: "Username must be 20 characters or less"}
	}
	if !core.UsernameRegex.MatchString(username) {
		return FormatResult{Message: "Username can only contain letters, numbers, underscores, and hyphens"}
	}
	return FormatResult{Valid: true}
}
