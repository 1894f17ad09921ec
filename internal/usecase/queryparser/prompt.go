package queryparser

import "fmt"

// buildPrompt asks the model for strict JSON with explicit nulls so absent
// filters stay absent instead of becoming placeholder strings.
func buildPrompt(query string) string {
	return fmt.Sprintf(`You extract structured job-search filters from a natural-language query.

Return ONLY a JSON object with exactly these keys:
- "location": city or region mentioned, else null
- "salary": minimum salary as an integer, else null
- "experience": years of experience as an integer, else null
- "skills": array of skill strings mentioned, else null
- "job_type": employment type (e.g. "full-time", "part-time", "contract", "internship", "remote"), else null
- "semantic_query": the query rephrased to its core intent, with the extracted filters removed; never null or empty

Do not invent values. Use null for anything the query does not state.
No prose, no markdown, JSON only.

Query: %q`, query)
}
