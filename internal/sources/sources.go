package sources

// UniversitySources maps each topic category to its curated, authoritative
// SIUE pages. These lists double as the link allow-list handed to synthesis:
// the model may only surface URLs that appear here.
var UniversitySources = map[string][]string{
	"advising": {
		"https://www.siue.edu/academics/advising/",
		"https://www.siue.edu/engineering/advising/",
	},
	"engineering_news": {
		"https://www.siue.edu/engineering/news/",
		"https://www.siue.edu/news/",
	},
	"events": {
		"https://www.siue.edu/about/events/",
		"https://www.siue.edu/engineering/news-events/",
	},
	"clubs": {
		"https://www.siue.edu/kimmel/get-involved/",
		"https://www.siue.edu/engineering/student-organizations/",
	},
	"tutoring": {
		"https://www.siue.edu/academic-success/tutoring/",
		"https://www.siue.edu/lss/",
	},
	"counseling": {
		"https://www.siue.edu/counseling/",
		"https://www.siue.edu/student-affairs/counseling/",
	},
	"general": {
		"https://www.siue.edu/",
		"https://www.siue.edu/about/",
	},
}

// ForCategory returns the curated URL list for a category, or nil when the
// category is unknown.
func ForCategory(category string) []string {
	return UniversitySources[category]
}
