package server

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/mrsingh-rishi/juliee-gateway/tts"
)

// ChatCompleter answers a text query with a text answer.
type ChatCompleter interface {
	Ask(ctx context.Context, query string) (string, error)
}

// GeminiQuerier answers a text query with the provider's JSON reply.
type GeminiQuerier interface {
	Query(ctx context.Context, query string) (json.RawMessage, error)
}

// Transcriber turns uploaded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Synthesizer turns text into audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// AudioSpool stores synthesized audio in per-request temporary files.
type AudioSpool interface {
	Write(audio []byte) (tts.AudioFile, error)
}

// Deps are the collaborators a Gateway forwards requests to.
type Deps struct {
	Chat   ChatCompleter
	Gemini GeminiQuerier
	STT    Transcriber
	TTS    Synthesizer
	Spool  AudioSpool
}

// Gateway mediates between HTTP clients and the AI and speech providers. It
// holds no per-request state; every handler performs one blocking provider
// call.
type Gateway struct {
	chat   ChatCompleter
	gemini GeminiQuerier
	stt    Transcriber
	tts    Synthesizer
	spool  AudioSpool
}

// New creates a Gateway over the given providers.
func New(deps Deps) *Gateway {
	return &Gateway{
		chat:   deps.Chat,
		gemini: deps.Gemini,
		stt:    deps.STT,
		tts:    deps.TTS,
		spool:  deps.Spool,
	}
}

// NewApp builds a fiber app with CORS open to all origins, request logging and
// panic recovery, and registers all gateway routes on it.
func NewApp(g *Gateway) *fiber.App {
	app := fiber.New(fiber.Config{AppName: "juliee-gateway"})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())
	g.RegisterRoutes(app)
	return app
}

// RegisterRoutes attaches the gateway endpoints to the app.
func (g *Gateway) RegisterRoutes(app *fiber.App) {
	app.Get("/", g.handleHome)
	app.Get("/favicon.ico", g.handleFavicon)
	app.Post("/ask", g.handleAsk)
	app.Post("/speech-to-text", g.handleSpeechToText)
	app.Post("/text-to-speech", g.handleTextToSpeech)
}
