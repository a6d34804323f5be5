package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/mrsingh-rishi/juliee-gateway/config"
	"github.com/mrsingh-rishi/juliee-gateway/gemini"
	"github.com/mrsingh-rishi/juliee-gateway/llm"
	"github.com/mrsingh-rishi/juliee-gateway/server"
	"github.com/mrsingh-rishi/juliee-gateway/stt"
	"github.com/mrsingh-rishi/juliee-gateway/tts"
)

const chatModel = "gpt-3.5-turbo"

func main() {
	// Load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, falling back to environment variables")
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}

	pollyClient, err := tts.NewPollyClient(
		context.Background(),
		cfg.AWSAccessKeyID,
		cfg.AWSSecretAccessKey,
		cfg.AWSRegion,
		cfg.PollyVoiceID,
		cfg.PollyOutputFormat,
	)
	if err != nil {
		log.Fatalf("Failed to initialize Amazon Polly client: %v", err)
	}

	gateway := server.New(server.Deps{
		Chat:   llm.NewOpenAIClient(cfg.OpenAIAPIKey, chatModel),
		Gemini: gemini.NewClient(cfg.GeminiAPIKey),
		STT:    stt.NewGoogleRecognizer(cfg.GoogleSpeechAPIKey),
		TTS:    pollyClient,
		Spool:  tts.NewSpool(cfg.AudioSpoolDir),
	})

	app := server.NewApp(gateway)

	addr := ":" + cfg.Port
	log.Printf("Juliee gateway listening on %s", addr)
	log.Fatal(app.Listen(addr))
}
