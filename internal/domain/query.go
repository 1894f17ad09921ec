package domain

// ParsedQuery is the structured interpretation of one raw search query.
// Zero values mean the field was not extractable from the input; no field
// ever carries a placeholder. SemanticQuery is the residual free-text
// fragment and is never empty unless the raw query itself was empty.
type ParsedQuery struct {
	Location        string   `json:"location,omitempty"`
	Salary          int      `json:"salary,omitempty"`
	ExperienceYears int      `json:"experience,omitempty"`
	Skills          []string `json:"skills,omitempty"`
	JobType         string   `json:"job_type,omitempty"`
	SemanticQuery   string   `json:"semantic_query"`
}

// FallbackQuery is the degraded parse used when the language model call
// fails: no structured filters, the whole raw query as the semantic part.
func FallbackQuery(raw string) ParsedQuery {
	return ParsedQuery{SemanticQuery: raw}
}

// HasFilters reports whether any structured filter was extracted.
func (q ParsedQuery) HasFilters() bool {
	return q.Location != "" || q.Salary > 0 || q.ExperienceYears > 0 ||
		len(q.Skills) > 0 || q.JobType != ""
}
