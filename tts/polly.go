package tts

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"
	"github.com/pkg/errors"
)

// ProviderError reports a failure returned by the Amazon Polly service.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("Amazon Polly Error: %v", e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// PollyClient synthesizes speech with Amazon Polly using a fixed voice and
// output format.
type PollyClient struct {
	client *polly.Client
	voice  types.VoiceId
	format types.OutputFormat
}

// NewPollyClient builds a Polly client from static credentials.
func NewPollyClient(ctx context.Context, accessKeyID, secretAccessKey, region, voiceID, outputFormat string) (*PollyClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, "")),
	)
	if err != nil {
		return nil, errors.Wrap(err, "load aws config")
	}
	return &PollyClient{
		client: polly.NewFromConfig(cfg),
		voice:  types.VoiceId(voiceID),
		format: types.OutputFormat(outputFormat),
	}, nil
}

// Synthesize converts text to audio and returns the full audio stream.
func (p *PollyClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	out, err := p.client.SynthesizeSpeech(ctx, &polly.SynthesizeSpeechInput{
		Text:         aws.String(text),
		VoiceId:      p.voice,
		OutputFormat: p.format,
	})
	if err != nil {
		return nil, &ProviderError{Err: err}
	}
	defer out.AudioStream.Close()

	audio, err := io.ReadAll(out.AudioStream)
	if err != nil {
		return nil, errors.Wrap(err, "read audio stream")
	}
	return audio, nil
}
