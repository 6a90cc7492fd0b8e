package azuresearch

// SearchRequest is the body of a documents search call.
type SearchRequest struct {
	Search    string `json:"search"`
	Top       int    `json:"top,omitempty"`
	Select    string `json:"select,omitempty"`    // comma-separated field list
	QueryType string `json:"queryType,omitempty"` // "simple", "full" or "semantic"
	Filter    string `json:"filter,omitempty"`
}

// SearchResponse holds matching documents in rank order.
type SearchResponse struct {
	Value []Document `json:"value"`
}

// Document is one index document. Field names depend on the index schema;
// the relevance score is under "@search.score".
type Document map[string]interface{}

// String returns the named field as a string, or "" when absent or not a string.
func (d Document) String(field string) string {
	if v, ok := d[field].(string); ok {
		return v
	}
	return ""
}

// Score returns the relevance score.
func (d Document) Score() float64 {
	if v, ok := d["@search.score"].(float64); ok {
		return v
	}
	return 0
}

// ErrorResponse is the error body returned by the service.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
