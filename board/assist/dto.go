package assist

// DraftRequest - DTO for free-text drafts
type DraftRequest struct {
	Position string `json:"position"`
	Skills   string `json:"skills,omitempty"`
}

// DraftResponse - cleaned model text
type DraftResponse struct {
	Text string `json:"text"`
}

// TagsRequest - DTO for tag suggestions merged into an existing list
type TagsRequest struct {
	Position string   `json:"position"`
	Existing []string `json:"existing,omitempty"`
}

// TagsResponse - suggested tags and the merged list
type TagsResponse struct {
	Suggested []string `json:"suggested"`
	Tags      []string `json:"tags"`
}
