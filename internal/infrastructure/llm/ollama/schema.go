package ollama

import "github.com/santhosh-tekuri/jsonschema/v5"

// profileSchemaJSON constrains the model output. Every field is nullable:
// absence of data is expressed as null, and a null name is how the model
// signals that the document is not a resume. The name gate downstream
// decides what to do with it.
const profileSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "name": {"type": ["string", "null"]},
    "currentRole": {"type": ["string", "null"]},
    "experienceYears": {"type": ["integer", "null"]},
    "skills": {
      "type": ["array", "null"],
      "items": {"type": "string"}
    },
    "education": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "properties": {
          "degree": {"type": ["string", "null"]},
          "institution": {"type": ["string", "null"]},
          "graduationYear": {"type": ["integer", "null"]}
        }
      }
    },
    "summary": {"type": ["string", "null"]},
    "email": {"type": ["string", "null"]},
    "phone": {"type": ["string", "null"]},
    "location": {"type": ["string", "null"]},
    "socialHandles": {
      "type": ["object", "null"],
      "properties": {
        "linkedin": {"type": ["string", "null"]},
        "github": {"type": ["string", "null"]},
        "twitter": {"type": ["string", "null"]},
        "portfolio": {"type": ["string", "null"]},
        "other": {
          "type": ["array", "null"],
          "items": {"type": "string"}
        }
      }
    }
  }
}`

var profileSchema = jsonschema.MustCompileString("profile.schema.json", profileSchemaJSON)
