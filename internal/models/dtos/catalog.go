package dtos

// CatalogElement is the shape of a fallback element. Upstream elements are
// passed through untouched and may carry any fields.
type CatalogElement struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Category   string `json:"category"`
	SVGURL     string `json:"svg_url"`
	PreviewURL string `json:"preview_url"`
}

// ElementsResponse is the envelope both catalog endpoints answer with
type ElementsResponse struct {
	Elements []CatalogElement `json:"elements"`
}
