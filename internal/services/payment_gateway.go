package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/payOSHQ/payos-lib-golang"
)

type PayOSConfig struct {
	ClientID     string
	ApiKey       string
	ChecksumKey  string // secret used to sign webhooks
	ReturnURL    string // e.g. https://yourapp.com/contributions/purchase-return
	CancelURL    string
	ProviderName string // "payos"
}

type SessionMetadata struct {
	ContributionID   string
	ContributionType string
}

type CreatedSession struct {
	SessionID  string
	OrderCode  int64
	OrderRef   string // provider-qualified order code, see OrderCodeRef
	PaymentURL string
	// Raw provider response, stored alongside the session for traceability.
	ProviderPayload []byte
}

type GatewaySessionStatus string

const (
	GatewayStatusPaid    GatewaySessionStatus = "paid"
	GatewayStatusPending GatewaySessionStatus = "pending"
	GatewayStatusExpired GatewaySessionStatus = "expired"
)

// PaymentGateway is the external checkout provider boundary. Creation is
// at-least-once-retryable; GetSession tolerates duplicate calls.
type PaymentGateway interface {
	CreateSession(ctx context.Context, amountCents int64, meta SessionMetadata) (*CreatedSession, error)
	GetSession(ctx context.Context, sessionID string) (GatewaySessionStatus, error)
}

type payOSGateway struct {
	cfg PayOSConfig
}

func NewPayOSGateway(cfg PayOSConfig) (PaymentGateway, error) {
	if cfg.ClientID == "" || cfg.ApiKey == "" || cfg.ChecksumKey == "" {
		return nil, fmt.Errorf("missing payOS credentials")
	}
	if cfg.ProviderName == "" {
		cfg.ProviderName = "payos"
	}
	return &payOSGateway{cfg: cfg}, nil
}

func (g *payOSGateway) CreateSession(ctx context.Context, amountCents int64, meta SessionMetadata) (*CreatedSession, error) {

	if err := payos.Key(g.cfg.ClientID, g.cfg.ApiKey, g.cfg.ChecksumKey); err != nil {
		return nil, fmt.Errorf("payos client init: %w", err)
	}

	// payOS expects an int64 order code. Unix seconds plus a short random
	// suffix keeps it within 13 digits and unlikely to collide.
	orderCode := time.Now().Unix()%1_000_000_000 + int64(rand.Intn(9000)+1000)

	item := payos.Item{
		Name:     fmt.Sprintf("Contribution %s", meta.ContributionType),
		Price:    int(amountCents),
		Quantity: 1,
	}

	body := payos.CheckoutRequestType{
		OrderCode:   orderCode,
		Amount:      int(amountCents),
		Items:       []payos.Item{item},
		Description: fmt.Sprintf("%s %s", meta.ContributionType, meta.ContributionID),
		CancelUrl:   g.cfg.CancelURL,
		ReturnUrl:   g.cfg.ReturnURL,
	}

	resp, err := payos.CreatePaymentLink(body)
	if err != nil {
		return nil, fmt.Errorf("payos create link: %w", err)
	}

	payload, err := json.Marshal(resp)
	if err != nil {
		payload = nil
	}

	return &CreatedSession{
		SessionID:       resp.PaymentLinkId,
		OrderCode:       orderCode,
		OrderRef:        OrderCodeRef(g.cfg.ProviderName, orderCode),
		PaymentURL:      resp.CheckoutUrl,
		ProviderPayload: payload,
	}, nil
}

func (g *payOSGateway) GetSession(ctx context.Context, sessionID string) (GatewaySessionStatus, error) {

	if err := payos.Key(g.cfg.ClientID, g.cfg.ApiKey, g.cfg.ChecksumKey); err != nil {
		return "", fmt.Errorf("payos client init: %w", err)
	}

	info, err := payos.GetPaymentLinkInformation(sessionID)
	if err != nil {
		return "", fmt.Errorf("payos get link: %w", err)
	}

	switch info.Status {
	case "PAID":
		return GatewayStatusPaid, nil
	case "EXPIRED", "CANCELLED":
		return GatewayStatusExpired, nil
	default:
		return GatewayStatusPending, nil
	}
}

// OrderCodeRef renders the provider-side order correlation the same way for
// storage and logs.
func OrderCodeRef(provider string, orderCode int64) string {
	return provider + ":" + strconv.FormatInt(orderCode, 10)
}
