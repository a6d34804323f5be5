package server

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"github.com/mrsingh-rishi/juliee-gateway/llm"
	"github.com/mrsingh-rishi/juliee-gateway/model"
	"github.com/mrsingh-rishi/juliee-gateway/stt"
	"github.com/mrsingh-rishi/juliee-gateway/tts"
)

const welcomeMessage = "Welcome to the Juliee Voice Assistant API!"

func (g *Gateway) handleHome(c *fiber.Ctx) error {
	return c.SendString(welcomeMessage)
}

func (g *Gateway) handleFavicon(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

func (g *Gateway) handleAsk(c *fiber.Ctx) error {
	var req model.AskRequest
	if err := c.BodyParser(&req); err != nil || req.Query == "" {
		return badRequest(c, "Query is required.")
	}

	aiModel := req.Model
	if aiModel == "" {
		aiModel = "ChatGPT"
	}

	switch aiModel {
	case "ChatGPT":
		answer, err := g.chat.Ask(c.Context(), req.Query)
		if err != nil {
			var provErr *llm.ProviderError
			if errors.As(err, &provErr) {
				log.Printf("OpenAI API Error: %v", provErr.Unwrap())
				return serverError(c, err.Error())
			}
			log.Printf("Unexpected Error: %v", err)
			return serverError(c, err.Error())
		}
		return c.JSON(model.AskResponse{Response: answer})

	case "Gemini":
		raw, err := g.gemini.Query(c.Context(), req.Query)
		if err != nil {
			log.Printf("Gemini API Error: %v", err)
			return serverError(c, err.Error())
		}
		return c.JSON(model.AskResponse{Response: raw})

	default:
		return badRequest(c, "AI model not supported.")
	}
}

func (g *Gateway) handleSpeechToText(c *fiber.Ctx) error {
	fh, err := c.FormFile("audio")
	if err != nil {
		return badRequest(c, "Audio file is required.")
	}

	f, err := fh.Open()
	if err != nil {
		log.Printf("Unexpected Error: %v", err)
		return serverError(c, err.Error())
	}
	defer f.Close()

	audio, err := io.ReadAll(f)
	if err != nil {
		log.Printf("Unexpected Error: %v", err)
		return serverError(c, err.Error())
	}

	text, err := g.stt.Transcribe(c.Context(), audio)
	if err != nil {
		if errors.Is(err, stt.ErrNoSpeech) {
			log.Println("Google Speech Recognition could not understand audio.")
			return badRequest(c, "Google Speech Recognition could not understand audio.")
		}
		var reqErr *stt.RequestError
		if errors.As(err, &reqErr) {
			log.Printf("Google Speech Recognition service error: %s", reqErr.Detail)
			return serverError(c, err.Error())
		}
		log.Printf("Unexpected Error: %v", err)
		return serverError(c, err.Error())
	}

	log.Println("Speech to text conversion successful")
	return c.JSON(model.TranscriptResponse{Text: text})
}

func (g *Gateway) handleTextToSpeech(c *fiber.Ctx) error {
	var req model.SpeechRequest
	if err := c.BodyParser(&req); err != nil || req.Text == "" {
		return badRequest(c, "Text is required for conversion.")
	}

	audio, err := g.tts.Synthesize(c.Context(), req.Text)
	if err != nil {
		var provErr *tts.ProviderError
		if errors.As(err, &provErr) {
			log.Printf("Amazon Polly Error: %v", provErr.Unwrap())
		} else {
			log.Printf("Unexpected Error: %v", err)
		}
		return serverError(c, err.Error())
	}

	file, err := g.spool.Write(audio)
	if err != nil {
		log.Printf("Unexpected Error: %v", err)
		return serverError(c, err.Error())
	}
	log.Println("Text to speech conversion successful")

	// The spool file must be gone once the response is prepared, whatever
	// happened while sending. A failed removal supersedes any prior success.
	sendErr := sendAudio(c, file)
	if rmErr := file.Remove(); rmErr != nil {
		log.Printf("Permission Error: %v", rmErr)
		c.Response().Header.Del(fiber.HeaderContentDisposition)
		return serverError(c, "Failed to delete the temporary file.")
	}
	return sendErr
}

// sendAudio streams the spooled file back as a downloadable attachment.
func sendAudio(c *fiber.Ctx, file tts.AudioFile) error {
	data, err := os.ReadFile(file.Path())
	if err != nil {
		log.Printf("Unexpected Error: %v", err)
		return serverError(c, err.Error())
	}
	c.Set(fiber.HeaderContentType, "audio/mpeg")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Name()))
	return c.Send(data)
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{Error: msg})
}

func serverError(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(model.ErrorResponse{Error: msg})
}
