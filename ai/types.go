package ai

import "github.com/vietnguyen2358/findandseek/core"

// EmbeddingDimensions is the fixed length of every embedding vector in the
// system. It must stay constant across stored detections and query
// embeddings or similarity comparison is meaningless.
const EmbeddingDimensions = 1536

// LocatedPerson is one person found by the localizer: a normalized bounding
// box and the model's confidence in the detection.
type LocatedPerson struct {
	// BBox is the person's bounding box, normalized by image width and
	// height so every component lies in [0,1].
	BBox core.BBox

	// Confidence is the detection confidence in [0,1].
	Confidence float32
}

// PersonAttributes is the structured result of analyzing one cropped person.
type PersonAttributes struct {
	// Description is a one-line overview of the person.
	Description string

	// Details holds the structured attribute fields. DistinctiveFeatures is
	// never nil.
	Details core.DetectionDetails
}

// FallbackAttributes returns the sentinel attribute record substituted when
// analysis of a crop fails. It is deliberately well-formed so downstream
// consumers never branch on partial failure.
func FallbackAttributes() PersonAttributes {
	return PersonAttributes{
		Description: core.FallbackDescription,
		Details:     core.FallbackDetails(),
	}
}

// ParsedQuery is the structured decomposition of a raw search query.
type ParsedQuery struct {
	// Filters are the typed filters extracted from the query. Empty when
	// nothing could be extracted, never nil.
	Filters []core.SearchFilter

	// Response is a short natural-language reply describing what the system
	// understood from the query.
	Response string

	// Suggestions are follow-up prompts the caller can offer. Never nil.
	Suggestions []string
}

// FallbackParsedQuery returns the sentinel parse result used when query
// parsing fails: no filters, an apology, and a suggestion to rephrase.
func FallbackParsedQuery() *ParsedQuery {
	return &ParsedQuery{
		Filters:  []core.SearchFilter{},
		Response: "Sorry, I couldn't interpret that description. Please try rephrasing it.",
		Suggestions: []string{
			"Describe the clothing, like \"person in a red jacket\"",
			"Add a location, like \"near the transit center\"",
		},
	}
}
