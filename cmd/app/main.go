package main

import (
	"context"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"log"
	"os"
	"memoria/cmd/fx/accountfx"
	"memoria/cmd/fx/contributionfx"
	"memoria/cmd/fx/dbfx"
	"memoria/cmd/fx/greetingfx"
	"memoria/cmd/fx/paymentfx"
	"memoria/cmd/fx/pricingfx"
	"memoria/cmd/fx/storagefx"
	"memoria/internal/api/controllers"
	"memoria/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	app := fx.New(
		dbfx.Module,
		storagefx.Module,
		accountfx.Module,
		pricingfx.Module,
		contributionfx.Module,
		paymentfx.Module,
		greetingfx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Println("Starting HTTP server at ${PORT}")
				if err := engine.Run(":" + os.Getenv("PORT")); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	contributionController *controllers.ContributionController,
	pricingController *controllers.PricingController,
	greetingController *controllers.GreetingController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, accountController, contributionController, pricingController, greetingController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	contributionController *controllers.ContributionController,
	pricingController *controllers.PricingController,
	greetingController *controllers.GreetingController) {

	r.POST("/auth/login", accountController.Login)

	r.GET("/memorials/:memorialId/contributions", contributionController.ListByMemorial)
	r.GET("/memorials/:memorialId/greeting", greetingController.GetGreeting)
	r.GET("/contributions/purchase-return", contributionController.PurchaseReturn)
	r.GET("/prices", pricingController.GetPrice)

	authed := r.Group("", middleware.JWTAuthMiddleware())
	authed.PUT("/contributions/:id", contributionController.UpdateDraft)
	authed.GET("/memorials/:memorialId/greeting/suggested-photo", greetingController.SuggestPhoto)

	writable := authed.Group("", middleware.NotSuspendedMiddleware())
	writable.POST("/memorials/:memorialId/contributions", contributionController.CreateDraft)
	writable.POST("/contributions/:id/publish", contributionController.Publish)
	writable.POST("/memorials/:memorialId/greeting/audio", greetingController.SubmitAudio)
	writable.POST("/memorials/:memorialId/greeting/image", greetingController.SubmitImage)
	writable.POST("/memorials/:memorialId/greeting/reset", greetingController.ResetGreeting)

	admin := authed.Group("/admin", middleware.RoleMiddleware("admin"))
	admin.PUT("/prices", pricingController.SetPrice)
}
