// Package mention extracts @username references from note text.
package mention

import (
	"regexp"
	"strings"
)

var mentionRe = regexp.MustCompile(`@([\w-]+)`)

// Extract returns the distinct usernames referenced in text, lowercased,
// in first-appearance order. "@alice @Alice @bob" yields ["alice", "bob"].
// Usernames are normalized to lowercase here and at registration, so
// resolution is a single exact indexed match.
func Extract(text string) []string {
	matches := mentionRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	usernames := make([]string, 0, len(matches))
	for _, m := range matches {
		username := strings.ToLower(m[1])
		if _, ok := seen[username]; ok {
			continue
		}
		seen[username] = struct{}{}
		usernames = append(usernames, username)
	}
	return usernames
}
