package stt

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

const defaultEndpoint = "https://speech.googleapis.com/v1/speech:recognize"

// ErrNoSpeech means the recognizer returned no transcript for the audio.
var ErrNoSpeech = errors.New("no speech recognized")

// RequestError reports a failure to get results from the recognition service,
// either a non-200 reply or a transport failure.
type RequestError struct {
	Detail string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("Could not request results from Google Speech Recognition service; %s", e.Detail)
}

// GoogleRecognizer transcribes audio with the Google Speech Recognition REST
// API.
type GoogleRecognizer struct {
	apiKey   string
	endpoint string
	http     *http.Client
}

// NewGoogleRecognizer creates a recognizer with the given API key.
func NewGoogleRecognizer(apiKey string) *GoogleRecognizer {
	return &GoogleRecognizer{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		http:     http.DefaultClient,
	}
}

// NewGoogleRecognizerWithEndpoint creates a recognizer against a custom
// endpoint. Used by tests to point the recognizer at a fake backend.
func NewGoogleRecognizerWithEndpoint(apiKey, endpoint string) *GoogleRecognizer {
	r := NewGoogleRecognizer(apiKey)
	r.endpoint = endpoint
	return r
}

type recognizeRequest struct {
	Config recognizeConfig `json:"config"`
	Audio  recognizeAudio  `json:"audio"`
}

type recognizeConfig struct {
	LanguageCode string `json:"languageCode"`
}

type recognizeAudio struct {
	Content string `json:"content"`
}

type recognizeResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string  `json:"transcript"`
			Confidence float64 `json:"confidence"`
		} `json:"alternatives"`
	} `json:"results"`
}

// Transcribe submits the audio bytes for recognition and returns the first
// transcript. Audio the recognizer cannot turn into text yields ErrNoSpeech;
// service and transport failures yield a *RequestError.
func (r *GoogleRecognizer) Transcribe(ctx context.Context, audio []byte) (string, error) {
	body, err := json.Marshal(recognizeRequest{
		Config: recognizeConfig{LanguageCode: "en-US"},
		Audio:  recognizeAudio{Content: base64.StdEncoding.EncodeToString(audio)},
	})
	if err != nil {
		return "", errors.Wrap(err, "marshal payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint+"?key="+r.apiKey, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return "", &RequestError{Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(resp.Body)
		return "", &RequestError{Detail: fmt.Sprintf("status %d: %s", resp.StatusCode, bytes.TrimSpace(detail))}
	}

	var parsed recognizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", errors.Wrap(err, "parse response")
	}

	if len(parsed.Results) == 0 || len(parsed.Results[0].Alternatives) == 0 {
		return "", ErrNoSpeech
	}
	transcript := parsed.Results[0].Alternatives[0].Transcript
	if transcript == "" {
		return "", ErrNoSpeech
	}
	return transcript, nil
}
