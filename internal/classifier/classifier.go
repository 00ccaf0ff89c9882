package classifier

import "strings"

// checked in order; the first group with a keyword hit wins
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"counseling", []string{
		"counseling", "counselling", "counselor", "counselor services",
		"therapy", "mental health", "anxiety", "stress", "depression",
		"wellness", "crisis", "caps",
	}},
	{"advising", []string{
		"advising", "advisor", "academic advising", "starfish", "meet with my advisor",
	}},
	{"tutoring", []string{
		"tutoring", "tutor", "study help", "academic help", "help with math",
		"writing center", "writing lab", "learning support", "supplemental instruction",
		"si", "office hours", "peer mentor",
	}},
	{"engineering_news", []string{
		"engineering news", "soe news", "siue engineering", "school of engineering update",
	}},
	{"events", []string{
		"event", "calendar", "competition", "workshop", "seminar",
	}},
	{"clubs", []string{
		"club", "organization", "student org", "get involved", "join",
	}},
}

// Classify assigns a topic category to a user message. Anything that matches
// no keyword group is "general".
func Classify(message string) string {
	m := strings.ToLower(message)
	for _, group := range categoryKeywords {
		for _, k := range group.keywords {
			if strings.Contains(m, k) {
				return group.category
			}
		}
	}
	return "general"
}
