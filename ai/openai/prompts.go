package openai

import (
	"fmt"
	"strings"

	"github.com/vietnguyen2358/findandseek/core"
)

const locationResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "people": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "bbox": {
            "type": "array",
            "items": {"type": "number", "minimum": 0, "maximum": 1},
            "minItems": 4,
            "maxItems": 4
          },
          "confidence": {"type": "number", "minimum": 0, "maximum": 1}
        },
        "required": ["bbox", "confidence"],
        "additionalProperties": false
      }
    }
  },
  "required": ["people"],
  "additionalProperties": false
}`

const locationPrompt = `You are a person detection system for surveillance imagery.

Locate every person visible in the provided image and return ONLY valid JSON
matching this schema:

%s

Rules:
- Report people only. Ignore vehicles, animals, bags, and every other object class.
- bbox is [x, y, width, height] normalized by image width and height: every
  component must lie in [0,1], with (x, y) the top-left corner of the box.
- confidence is your detection confidence between 0 and 1.
- If no people are visible, return {"people": []}.
- Output the JSON object only: no preamble, no explanation, no code fences.`

const analysisResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "description": {"type": "string"},
    "age": {"type": "string"},
    "clothing": {"type": "string"},
    "environment": {"type": "string"},
    "movement": {"type": "string"},
    "distinctive_features": {"type": "array", "items": {"type": "string"}}
  },
  "required": ["description", "age", "clothing", "environment", "movement", "distinctive_features"],
  "additionalProperties": false
}`

const analysisPrompt = `You are an advanced person detection system specializing in missing persons cases.

The provided image is a crop around a single detected person. Describe that
person and return ONLY valid JSON matching this schema:

%s

Rules:
- description is a brief one-line overview of the person.
- age is an estimated age range, clothing a detailed clothing description
  including colors, environment the immediate surroundings and context,
  movement the direction and type of movement.
- distinctive_features lists notable characteristics (glasses, hat, backpack,
  hair color, accessories). Use [] when nothing stands out.
- Be precise and thorough. Do not invent attributes you cannot see.
- Output the JSON object only: no preamble, no explanation, no code fences.`

const parseResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "filters": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "category": {"type": "string"},
          "value": {"type": "string"}
        },
        "required": ["category", "value"],
        "additionalProperties": false
      }
    },
    "response": {"type": "string"},
    "suggestions": {"type": "array", "items": {"type": "string"}}
  },
  "required": ["filters", "response", "suggestions"],
  "additionalProperties": false
}`

const parsePromptTemplate = `You are an AI assistant helping with missing persons searches over surveillance footage.

Decompose the search query into typed filters and return ONLY valid JSON
matching this schema:

%s

Rules:
- category must be exactly one of: %s.
- value is the query fragment the filter captures, lowercase.
- response is one short, compassionate sentence describing what you will
  search for.
- suggestions lists up to three follow-up prompts that would narrow the
  search (for example adding a location or a time window).
- If the query contains nothing usable, return "filters": [].
- Output the JSON object only: no preamble, no explanation, no code fences.

Example:
Input: "teenager in a red hoodie near the bus station this morning"
Output:
{
  "filters": [
    {"category": "age", "value": "teenager"},
    {"category": "clothing", "value": "red hoodie"},
    {"category": "location", "value": "bus station"},
    {"category": "time", "value": "this morning"}
  ],
  "response": "Searching for a teenager in a red hoodie seen near the bus station this morning.",
  "suggestions": [
    "Add what they were carrying, like a backpack",
    "Narrow the time window, like between 8 and 9 AM"
  ]
}`

const explainSystemPrompt = `You are an AI assistant specializing in missing persons searches and surveillance analysis.
Focus on:
- Matching physical descriptions and clothing
- Analyzing movement patterns
- Identifying key locations
- Assessing timing of sightings

Be precise but compassionate in your responses.`

// buildParsePrompt creates the query parsing prompt with the valid filter
// categories embedded.
func buildParsePrompt() string {
	categories := make([]string, len(core.FilterCategories))
	for i, c := range core.FilterCategories {
		categories[i] = string(c)
	}
	return fmt.Sprintf(parsePromptTemplate, parseResponseSchema, strings.Join(categories, ", "))
}

// buildLocationPrompt creates the person localization prompt.
func buildLocationPrompt() string {
	return fmt.Sprintf(locationPrompt, locationResponseSchema)
}

// buildAnalysisPrompt creates the per-crop attribute extraction prompt.
func buildAnalysisPrompt() string {
	return fmt.Sprintf(analysisPrompt, analysisResponseSchema)
}

// buildExplainPrompt creates the user prompt describing the top matches for
// the explainer.
func buildExplainPrompt(query string, lines []string) string {
	return fmt.Sprintf(`Search Query: %q
Detected persons:
%s

Analyze these detections in relation to the search query. For each detection:
1. Assess how well it matches the search criteria
2. Note any distinctive features that might be relevant
3. Consider the location and timing

Provide a concise analysis with confidence levels.`, query, strings.Join(lines, "\n"))
}
