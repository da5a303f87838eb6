package taxonomy

import "strings"

// seedAliases is the static, hand-curated alias table. Keys are canonical
// skill names; values are alternative spellings seeded when the canonical
// skill is first created.
var seedAliases = map[string][]string{
	"JavaScript": {"JS", "ECMAScript"},
	"TypeScript": {"TS"},
	"Go":         {"Golang"},
	"Python":     {"Python3"},
	"C#":         {"CSharp", "C Sharp"},
	"C++":        {"CPP"},
	"React":      {"React.js", "ReactJS"},
	"Vue":        {"Vue.js", "VueJS"},
	"Angular":    {"AngularJS"},
	"Node.js":    {"Node", "NodeJS"},
	"PostgreSQL": {"Postgres", "PSQL"},
	"MySQL":      {"My SQL"},
	"MongoDB":    {"Mongo"},
	"Kubernetes": {"K8s"},
	"Docker":     {"Docker Containers"},
	"AWS":        {"Amazon Web Services"},
	"GCP":        {"Google Cloud", "Google Cloud Platform"},
	"Azure":      {"Microsoft Azure"},

	"Machine Learning":            {"ML"},
	"Artificial Intelligence":     {"AI"},
	"Natural Language Processing": {"NLP"},
	"Continuous Integration":      {"CI/CD", "CICD"},
	"Project Management":          {"PM"},
	"Search Engine Optimization":  {"SEO"},
	"Microsoft Excel":             {"Excel", "MS Excel"},
	"Microsoft Word":              {"Word", "MS Word"},

	"Customer Relationship Management":         {"CRM"},
	"Registered Nurse":                         {"RN"},
	"Cardiopulmonary Resuscitation":            {"CPR"},
	"Generally Accepted Accounting Principles": {"GAAP"},
	"Anti-Money Laundering":                    {"AML"},
	"Know Your Customer":                       {"KYC"},
}

// SeedAliasesFor returns the curated aliases for a canonical name, matching
// case-insensitively. Returns nil for unknown names.
func SeedAliasesFor(canonicalName string) []string {
	if aliases, ok := seedAliases[canonicalName]; ok {
		return aliases
	}
	for name, aliases := range seedAliases {
		if strings.EqualFold(name, canonicalName) {
			return aliases
		}
	}
	return nil
}
