package storagefx

import (
	"context"
	"go.uber.org/fx"
	"log"
	"memoria/internal/services"
)

var Module = fx.Provide(
	provideObjectStore,
)

func provideObjectStore() services.ObjectStore {
	store, err := services.NewS3Store(context.Background(), services.S3ConfigFromEnv())
	if err != nil {
		log.Printf("Error initializing S3 store: %v", err)
	}

	return store
}
