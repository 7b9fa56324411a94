// Package parser extracts the message body and the excluded-handle set
// from a raw inline query of the form "some text @user1 @user2".
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Telegram usernames: 5-32 characters, letters, digits and underscores,
// starting with a letter.
var handleRegex = regexp.MustCompile(`@([a-zA-Z][a-zA-Z0-9_]{4,31})`)

var (
	// ErrNoExclusions means the input contains no valid @handle token.
	ErrNoExclusions = errors.New("no excluded users specified")
	// ErrEmptyBody means nothing is left of the message once the
	// trailing handles are stripped.
	ErrEmptyBody = errors.New("message body is empty")
)

// Parse splits raw input into the message body and the excluded handles.
// Handles are recognized anywhere in the string and returned lowercased,
// de-duplicated, in first-occurrence order. Only trailing handle tokens
// are stripped from the body: a handle mentioned mid-sentence stays part
// of the text. This asymmetry is deliberate and relied upon by users.
func Parse(raw string) (string, []string, error) {
	matches := handleRegex.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return "", nil, ErrNoExclusions
	}

	found := make([]string, 0, len(matches))
	for _, m := range matches {
		found = append(found, m[1])
	}

	seen := make(map[string]bool, len(found))
	excluded := make([]string, 0, len(found))
	for _, handle := range found {
		lower := strings.ToLower(handle)
		if !seen[lower] {
			seen[lower] = true
			excluded = append(excluded, lower)
		}
	}

	body := strings.TrimSpace(raw)

	// Walk the found tokens back to front, peeling each one off the end
	// of the text. Handle characters need no regexp escaping.
	for i := len(found) - 1; i >= 0; i-- {
		trailing := regexp.MustCompile(fmt.Sprintf(`(?i)\s*@%s\s*$`, found[i]))
		body = trailing.ReplaceAllString(body, "")
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return "", nil, ErrEmptyBody
	}

	return body, excluded, nil
}
