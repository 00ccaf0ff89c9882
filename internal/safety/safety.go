package safety

import "strings"

// BlockedReply is the canned response for messages the guard rejects.
const BlockedReply = "I can't help with that topic. If you have questions about SIUE programs, " +
	"campus services, events, clubs, advising, or university resources, I can help."

var blockedKeywords = []string{
	// politics / elections / lobbying
	"vote", "election", "democrat", "republican", "trump", "biden", "politics",
	// hate / harassment
	"hate", "racist", "slur",
	// violence / self-harm
	"kill", "suicide", "self harm", "bomb", "weapon", "gun",
	// explicit sexual content
	"porn", "sex",
}

// Check returns whether a message is allowed and, when it is not, the reply
// to send instead. Deterministic keyword matching only.
func Check(message string) (bool, string) {
	m := strings.ToLower(message)
	for _, k := range blockedKeywords {
		if strings.Contains(m, k) {
			return false, BlockedReply
		}
	}
	return true, ""
}
