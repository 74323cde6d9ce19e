package models

// Extraction method identifiers reported in ProductDescriptionRecord.ExtractionMethod.
// The cascade methods are listed in trust order.
const (
	MethodJSONLD      = "jsonld"
	MethodJavaScript  = "javascript"
	MethodMainSection = "main_product_section"
	MethodSemantic    = "semantic_section"
	MethodMeta        = "meta"
	MethodBestBlock   = "best_block"

	// Terminal fetch outcomes. These carry no description.
	MethodFetchFail = "fetch_fail"
	MethodBlocked   = "blocked"
)

// ProductDescriptionRecord is the single output of one extraction call.
//
// An empty string means "not resolved". ExtractionMethod is empty exactly when
// ProductDescription is empty, except for the fetch outcomes MethodFetchFail
// and MethodBlocked. ConfidenceScore is 0 whenever ProductDescription is empty.
type ProductDescriptionRecord struct {
	URL                string  `json:"url,omitempty"`
	MetaTitle          string  `json:"meta_title,omitempty"`
	MetaDescription    string  `json:"meta_description,omitempty"`
	ProductDescription string  `json:"product_description,omitempty"`
	ExtractionMethod   string  `json:"extraction_method,omitempty"`
	ConfidenceScore    float64 `json:"confidence_score"`
}

// HasDescription reports whether the cascade produced a description.
func (r *ProductDescriptionRecord) HasDescription() bool {
	return r.ProductDescription != ""
}
