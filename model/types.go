package model

// AskRequest is the body of POST /ask.
type AskRequest struct {
	Query string `json:"query"`
	Model string `json:"model"`
}

// AskResponse wraps a chat answer. Response is a trimmed string for ChatGPT and
// the provider's parsed JSON for Gemini.
type AskResponse struct {
	Response any `json:"response"`
}

// TranscriptResponse is the success body of POST /speech-to-text.
type TranscriptResponse struct {
	Text string `json:"text"`
}

// SpeechRequest is the body of POST /text-to-speech.
type SpeechRequest struct {
	Text string `json:"text"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}
