package models

// RateRequest is the JSON body alternative to a multipart upload: the
// service fetches the image from the given URL before rating it.
type RateRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// DictionaryUpdateRequest carries a bulk keyword-weight update. Keys are
// case-normalized by the service; weights must be within [0,100].
type DictionaryUpdateRequest struct {
	Entries map[string]int `json:"entries" binding:"required"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
