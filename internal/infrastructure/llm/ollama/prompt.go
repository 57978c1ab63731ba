package ollama

import "unicode/utf8"

// Long resumes are truncated before prompting; the leading section carries
// the identity and role information the profile needs.
const maxPromptChars = 4000

func buildProfilePrompt(text string) string {
	snippet := text
	if len(snippet) > maxPromptChars {
		cut := maxPromptChars
		// Back off to a rune boundary so the cut never leaves invalid UTF-8.
		for cut > 0 && !utf8.RuneStart(snippet[cut]) {
			cut--
		}
		snippet = snippet[:cut]
	}

	return `You are a resume parser.
Return a strict JSON object with exactly these keys:
name, currentRole, experienceYears, skills, education, summary, email, phone, location, socialHandles.
Use null for any value you cannot determine from the document.
If the document is not a resume, set name to null.
education is an array of objects with keys degree, institution, graduationYear.
socialHandles is an object with keys linkedin, github, twitter, portfolio, other.
experienceYears must be a whole number of years.
No markdown, no commentary, no extra keys.

The output must conform to this JSON schema:
` + profileSchemaJSON + `

Document:
` + snippet
}
