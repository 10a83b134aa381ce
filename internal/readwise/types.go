package readwise

// Highlight is one excerpted passage plus its source metadata, as
// accepted by the Readwise create endpoint. All optional fields carry
// omitempty so that empty strings are absent on the wire; the upstream
// API distinguishes absent from empty, and empty is never intentional
// here.
type Highlight struct {
	Text          string `json:"text"`
	Title         string `json:"title,omitempty"`
	Author        string `json:"author,omitempty"`
	SourceURL     string `json:"source_url,omitempty"`
	SourceType    string `json:"source_type,omitempty"`
	Category      string `json:"category,omitempty"`
	Note          string `json:"note,omitempty"`
	Location      *int   `json:"location,omitempty"`
	LocationType  string `json:"location_type,omitempty"`
	HighlightedAt string `json:"highlighted_at,omitempty"`
	HighlightURL  string `json:"highlight_url,omitempty"`
	ImageURL      string `json:"image_url,omitempty"`
}

type HTTPError struct {
	StatusCode int
	Endpoint   string
	Body       string
	Message    string
}

func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return "upstream request failed"
}
