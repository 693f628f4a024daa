package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/pgvector/pgvector-go"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"
)

// Transcriber turns the submitted greeting audio into text, which feeds both
// the script generator and the photo suggestion embedding.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

type ScriptGenerator interface {
	GreetingScript(ctx context.Context, transcript string) (string, error)
}

type Embedder interface {
	Embed(ctx context.Context, text string) (pgvector.Vector, error)
}

type RenderRequest struct {
	AudioPath string `json:"audio_path"`
	ImagePath string `json:"image_path"`
	Script    string `json:"script"`
}

// VideoRenderer is the external voice-clone/video generation pipeline.
type VideoRenderer interface {
	Render(ctx context.Context, request RenderRequest) (string, error)
}

type openAIAudioClient struct {
	client *openai.Client
	store  ObjectStore
}

func NewOpenAIAudioClient(apiKey string, store ObjectStore) (Transcriber, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("missing OpenAI API key")
	}
	return &openAIAudioClient{
		client: openai.NewClient(apiKey),
		store:  store,
	}, nil
}

func (c *openAIAudioClient) Transcribe(ctx context.Context, audioPath string) (string, error) {

	body, err := c.store.Get(ctx, audioPath)
	if err != nil {
		return "", fmt.Errorf("fetch audio %s: %w", audioPath, err)
	}
	defer body.Close()

	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		Reader:   body,
		FilePath: audioPath,
	})
	if err != nil {
		return "", fmt.Errorf("transcription: %w", err)
	}

	return resp.Text, nil
}

type openAIEmbedder struct {
	client *openai.Client
}

func NewOpenAIEmbedder(apiKey string) (Embedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("missing OpenAI API key")
	}
	return &openAIEmbedder{client: openai.NewClient(apiKey)}, nil
}

func (c *openAIEmbedder) Embed(ctx context.Context, text string) (pgvector.Vector, error) {

	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.SmallEmbedding3,
	})
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("embedding: %w", err)
	}
	return pgvector.NewVector(resp.Data[0].Embedding), nil
}

type geminiScriptClient struct {
	client *genai.Client
	model  string
}

func NewGeminiScriptClient(apiKey string, model string) (ScriptGenerator, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &geminiScriptClient{
		client: client,
		model:  model,
	}, nil
}

func (c *geminiScriptClient) GreetingScript(ctx context.Context, transcript string) (string, error) {

	prompt := fmt.Sprintf(
		"Rewrite the following spoken message as a short, warm greeting script "+
			"suitable for a memorial video. Keep the speaker's voice and intent, "+
			"correct transcription artifacts, and stay under 80 words.\n\n%s",
		transcript,
	)

	model := c.client.GenerativeModel(c.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var out string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out += string(text)
		}
	}
	if out == "" {
		return "", fmt.Errorf("gemini returned empty script")
	}
	return out, nil
}

type httpVideoRenderer struct {
	endpoint string
	client   *http.Client
}

func NewHTTPVideoRenderer(endpoint string) (VideoRenderer, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("missing video renderer endpoint")
	}
	return &httpVideoRenderer{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Minute},
	}, nil
}

func (r *httpVideoRenderer) Render(ctx context.Context, request RenderRequest) (string, error) {

	payload, err := json.Marshal(request)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("renderer call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("renderer returned %d", resp.StatusCode)
	}

	var out struct {
		VideoPath string `json:"video_path"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("renderer response: %w", err)
	}
	if out.VideoPath == "" {
		return "", fmt.Errorf("renderer returned no video path")
	}
	return out.VideoPath, nil
}
