package paymentfx

import (
	"go.uber.org/fx"
	"log"
	"os"
	"time"
	"memoria/internal/repositories"
	"memoria/internal/services"
)

var payOsCfg = services.PayOSConfig{
	ClientID:     os.Getenv("PAYOS_CLIENT_ID"),
	ApiKey:       os.Getenv("PAYOS_API_KEY"),
	ChecksumKey:  os.Getenv("PAYOS_CHECKSUM_KEY"),
	ReturnURL:    os.Getenv("PAYMENT_RETURN_URL"),
	CancelURL:    os.Getenv("PAYMENT_CANCEL_URL"),
	ProviderName: "payos",
}

var Module = fx.Provide(
	repositories.NewCheckoutSessionRepository,
	providePaymentGateway,
	provideAutoApprover,
	providePublishService,
)

func providePaymentGateway() services.PaymentGateway {
	gateway, err := services.NewPayOSGateway(payOsCfg)
	if err != nil {
		log.Printf("Error initializing payment gateway: %v", err)
	}

	return gateway
}

func provideAutoApprover() services.AutoApprover {
	return services.NewWordListApprover(nil)
}

func providePublishService(
	contributionRepo repositories.ContributionRepositoryInterface,
	sessionRepo repositories.CheckoutSessionRepositoryInterface,
	pricing services.PricingServiceInterface,
	gateway services.PaymentGateway,
	approver services.AutoApprover,
) services.PublishServiceInterface {
	cfg := services.PublishConfig{
		SessionTTL:         30 * time.Minute,
		EditRedirectURL:    os.Getenv("PAYMENT_EDIT_REDIRECT_URL"),
		LandingRedirectURL: os.Getenv("PAYMENT_LANDING_REDIRECT_URL"),
	}

	return services.NewPublishService(contributionRepo, sessionRepo, pricing, gateway, approver, cfg)
}
