package server

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// ChatResponse carries the synthesized reply and the classifier's label, or
// the literal "blocked" when the safety guard rejected the message.
type ChatResponse struct {
	Reply    string `json:"reply"`
	Category string `json:"category"`
}

// FetchResponse is the diagnostic page-preview payload of GET /fetch.
type FetchResponse struct {
	URL         string `json:"url"`
	TextPreview string `json:"text_preview"`
}
