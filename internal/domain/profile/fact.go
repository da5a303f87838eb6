package profile

// WorkExperienceFact is one loosely-structured work entry produced by the
// extraction service. Optional fields may be empty; the engine tolerates the
// gaps rather than inventing values.
type WorkExperienceFact struct {
	Company      string
	JobTitle     string
	StartDate    string
	EndDate      string
	Achievements []string
	Skills       []string
}

// EducationFact mirrors the extraction service's education shape. The
// reconciler only uses it as a skill source today.
type EducationFact struct {
	Institution string
	Degree      string
	Field       string
	Skills      []string
}
