package greetingfx

import (
	"go.uber.org/fx"
	"log"
	"os"
	"memoria/internal/api/controllers"
	"memoria/internal/repositories"
	"memoria/internal/services"
	mem "memoria/pkg/memcache"
)

var Module = fx.Provide(
	repositories.NewGreetingRepository,
	provideJobTokens,
	provideTranscriber,
	provideScriptGenerator,
	provideVideoRenderer,
	provideEmbedder,
	services.NewGreetingService,
	controllers.NewGreetingController,
)

func provideJobTokens() mem.JobTokenStore {
	return mem.NewJobTokens()
}

func provideTranscriber(store services.ObjectStore) services.Transcriber {
	transcriber, err := services.NewOpenAIAudioClient(os.Getenv("OPENAI_API_KEY"), store)
	if err != nil {
		log.Printf("Error initializing transcriber: %v", err)
	}

	return transcriber
}

func provideScriptGenerator() services.ScriptGenerator {
	scripter, err := services.NewGeminiScriptClient(os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_MODEL"))
	if err != nil {
		log.Printf("Error initializing script generator: %v", err)
	}

	return scripter
}

func provideVideoRenderer() services.VideoRenderer {
	renderer, err := services.NewHTTPVideoRenderer(os.Getenv("VIDEO_RENDERER_URL"))
	if err != nil {
		log.Printf("Error initializing video renderer: %v", err)
	}

	return renderer
}

func provideEmbedder() services.Embedder {
	embedder, err := services.NewOpenAIEmbedder(os.Getenv("OPENAI_API_KEY"))
	if err != nil {
		log.Printf("Error initializing embedder: %v", err)
	}

	return embedder
}
