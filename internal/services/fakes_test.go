package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"memoria/internal/models/db_models"
	"memoria/pkg/utils"
)

// In-memory doubles for the repository and external-service interfaces.
// They reproduce the guarded-update semantics of the real gorm stores so the
// state-machine tests exercise the same compare-and-swap paths.

type fakeContributionRepo struct {
	mu          sync.Mutex
	rows        map[uuid.UUID]*db_models.Contribution
	transitions int
}

func newFakeContributionRepo() *fakeContributionRepo {
	return &fakeContributionRepo{rows: make(map[uuid.UUID]*db_models.Contribution)}
}

func (f *fakeContributionRepo) CreateContribution(ctx context.Context, c *db_models.Contribution) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	clone := *c
	f.rows[c.ID] = &clone
	return nil
}

func (f *fakeContributionRepo) GetContributionByID(ctx context.Context, id uuid.UUID) (*db_models.Contribution, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	clone := *row
	return &clone, nil
}

func (f *fakeContributionRepo) UpdateDraft(ctx context.Context, c *db_models.Contribution) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[c.ID]
	if !ok || row.Status != db_models.StatusDraft {
		return utils.ErrInvalidState
	}
	row.AssetPath = c.AssetPath
	row.AssetDecoration = c.AssetDecoration
	row.Decoration = c.Decoration
	row.Content = c.Content
	row.WreathTier = c.WreathTier
	row.DonationCount = c.DonationCount
	return nil
}

func (f *fakeContributionRepo) ListByMemorial(ctx context.Context, slug string, page int, pageSize int) ([]db_models.Contribution, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db_models.Contribution
	for _, row := range f.rows {
		if row.MemorialSlug == slug {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (f *fakeContributionRepo) TransitionFromDraft(ctx context.Context, id uuid.UUID, to db_models.ContributionStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok || row.Status != db_models.StatusDraft {
		return utils.ErrInvalidState
	}
	row.Status = to
	f.transitions++
	return nil
}

type fakeSessionRepo struct {
	mu   sync.Mutex
	rows map[string]*db_models.CheckoutSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{rows: make(map[string]*db_models.CheckoutSession)}
}

func (f *fakeSessionRepo) CreateSession(ctx context.Context, s *db_models.CheckoutSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.rows[s.SessionID]; exists {
		return fmt.Errorf("duplicate session id")
	}
	// Mirrors the partial unique index: one unconsumed session per
	// contribution, expired or not.
	for _, row := range f.rows {
		if row.ContributionID == s.ContributionID && !row.Consumed {
			return fmt.Errorf("open session exists for contribution %s", s.ContributionID)
		}
	}
	clone := *s
	f.rows[s.SessionID] = &clone
	return nil
}

func (f *fakeSessionRepo) GetBySessionID(ctx context.Context, sessionID string) (*db_models.CheckoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[sessionID]
	if !ok {
		return nil, nil
	}
	clone := *row
	return &clone, nil
}

func (f *fakeSessionRepo) ActiveForContribution(ctx context.Context, contributionID uuid.UUID, nowUnix int64) (*db_models.CheckoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.ContributionID == contributionID && !row.Consumed && row.ExpiresAt > nowUnix {
			clone := *row
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeSessionRepo) ExpireStale(ctx context.Context, contributionID uuid.UUID, nowUnix int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.ContributionID == contributionID && !row.Consumed && row.ExpiresAt <= nowUnix {
			row.Consumed = true
		}
	}
	return nil
}

func (f *fakeSessionRepo) MarkConsumed(ctx context.Context, sessionID string, outcome db_models.ContributionStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[sessionID]
	if !ok || row.Consumed {
		return false, nil
	}
	row.Consumed = true
	row.ConsumedOutcome = outcome
	return true, nil
}

func (f *fakeSessionRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

type fakeCatalogRepo struct {
	mu   sync.Mutex
	rows map[db_models.PriceCategory]map[string]*db_models.CatalogPrice
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{rows: make(map[db_models.PriceCategory]map[string]*db_models.CatalogPrice)}
}

func (f *fakeCatalogRepo) GetPrice(ctx context.Context, category db_models.PriceCategory, key string) (*db_models.CatalogPrice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	byKey, ok := f.rows[category]
	if !ok {
		return nil, nil
	}
	entry, ok := byKey[key]
	if !ok {
		return nil, nil
	}
	clone := *entry
	return &clone, nil
}

func (f *fakeCatalogRepo) UpsertPrice(ctx context.Context, entry *db_models.CatalogPrice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rows[entry.Category] == nil {
		f.rows[entry.Category] = make(map[string]*db_models.CatalogPrice)
	}
	clone := *entry
	f.rows[entry.Category][entry.Key] = &clone
	return nil
}

func (f *fakeCatalogRepo) set(category db_models.PriceCategory, key string, cents int64) {
	_ = f.UpsertPrice(context.Background(), &db_models.CatalogPrice{
		Category:     category,
		Key:          key,
		PriceInCents: &cents,
	})
}

// fakeGateway can be gated on a channel to hold concurrent CreateSession
// callers at the provider boundary.
type fakeGateway struct {
	mu          sync.Mutex
	createCalls int
	paid        map[string]bool
	expired     map[string]bool
	failCreate  bool
	failGet     bool
	createGate  chan struct{}
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		paid:    make(map[string]bool),
		expired: make(map[string]bool),
	}
}

func (f *fakeGateway) CreateSession(ctx context.Context, amountCents int64, meta SessionMetadata) (*CreatedSession, error) {
	f.mu.Lock()
	if f.failCreate {
		f.mu.Unlock()
		return nil, fmt.Errorf("gateway down")
	}
	f.createCalls++
	orderCode := int64(1000 + f.createCalls)
	sessionID := fmt.Sprintf("sess-%d", f.createCalls)
	gate := f.createGate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return &CreatedSession{
		SessionID:       sessionID,
		OrderCode:       orderCode,
		OrderRef:        OrderCodeRef("fakepay", orderCode),
		PaymentURL:      "https://pay.example/" + sessionID,
		ProviderPayload: []byte(fmt.Sprintf(`{"paymentLinkId":%q}`, sessionID)),
	}, nil
}

func (f *fakeGateway) GetSession(ctx context.Context, sessionID string) (GatewaySessionStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet {
		return "", fmt.Errorf("gateway down")
	}
	if f.paid[sessionID] {
		return GatewayStatusPaid, nil
	}
	if f.expired[sessionID] {
		return GatewayStatusExpired, nil
	}
	return GatewayStatusPending, nil
}

func (f *fakeGateway) createCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createCalls
}

func (f *fakeGateway) markPaid(sessionID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paid[sessionID] = true
}

type approverFunc func(ctx context.Context, c *db_models.Contribution) (bool, error)

func (fn approverFunc) ShouldAutoApprove(ctx context.Context, c *db_models.Contribution) (bool, error) {
	return fn(ctx, c)
}

type fakeGreetingRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*db_models.AiGreeting
}

func newFakeGreetingRepo() *fakeGreetingRepo {
	return &fakeGreetingRepo{rows: make(map[uuid.UUID]*db_models.AiGreeting)}
}

func (f *fakeGreetingRepo) GetByMemorialID(ctx context.Context, memorialID uuid.UUID) (*db_models.AiGreeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[memorialID]
	if !ok {
		return nil, nil
	}
	clone := *row
	return &clone, nil
}

func (f *fakeGreetingRepo) Upsert(ctx context.Context, g *db_models.AiGreeting) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *g
	f.rows[g.MemorialID] = &clone
	return nil
}

func (f *fakeGreetingRepo) UpdateIfToken(ctx context.Context, memorialID uuid.UUID, token string, updates map[string]interface{}) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[memorialID]
	if !ok || row.JobToken != token {
		return false, nil
	}
	for column, value := range updates {
		switch column {
		case "state":
			row.State = value.(db_models.GreetingState)
		case "transcript":
			row.Transcript = value.(string)
		case "video_path":
			row.VideoPath = value.(string)
		}
	}
	return true, nil
}

func (f *fakeGreetingRepo) Reset(ctx context.Context, memorialID uuid.UUID, newToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[memorialID]
	if !ok {
		return nil
	}
	row.AudioPath = ""
	row.ImagePath = ""
	row.VideoPath = ""
	row.Transcript = ""
	row.State = db_models.GreetingStateReady
	row.JobToken = newToken
	return nil
}

type fakeMemorialRepo struct {
	mu        sync.Mutex
	bySlug    map[string]*db_models.Memorial
	byID      map[uuid.UUID]*db_models.Memorial
	photo     *db_models.MemorialPhoto
}

func newFakeMemorialRepo() *fakeMemorialRepo {
	return &fakeMemorialRepo{
		bySlug: make(map[string]*db_models.Memorial),
		byID:   make(map[uuid.UUID]*db_models.Memorial),
	}
}

func (f *fakeMemorialRepo) add(slug string) *db_models.Memorial {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := &db_models.Memorial{Slug: slug}
	m.ID = uuid.New()
	f.bySlug[slug] = m
	f.byID[m.ID] = m
	return m
}

func (f *fakeMemorialRepo) GetBySlug(ctx context.Context, slug string) (*db_models.Memorial, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.bySlug[slug]
	if !ok {
		return nil, nil
	}
	clone := *m
	return &clone, nil
}

func (f *fakeMemorialRepo) GetByID(ctx context.Context, id uuid.UUID) (*db_models.Memorial, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	clone := *m
	return &clone, nil
}

func (f *fakeMemorialRepo) NearestPhoto(ctx context.Context, memorialID uuid.UUID, vector pgvector.Vector) (*db_models.MemorialPhoto, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.photo == nil {
		return nil, nil
	}
	clone := *f.photo
	return &clone, nil
}

type fakeObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: make(map[string][]byte)}
}

func (f *fakeObjectStore) Put(ctx context.Context, key string, body io.Reader, contentType string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return nil
}

func (f *fakeObjectStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[key]
	if !ok {
		return nil, fmt.Errorf("no such object %s", key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeObjectStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	return f.text, f.err
}

type fakeScripter struct {
	script string
	err    error
}

func (f *fakeScripter) GreetingScript(ctx context.Context, transcript string) (string, error) {
	return f.script, f.err
}

// fakeRenderer can be gated on a channel to simulate a long-running render.
type fakeRenderer struct {
	videoPath string
	err       error
	gate      chan struct{}
}

func (f *fakeRenderer) Render(ctx context.Context, request RenderRequest) (string, error) {
	if f.gate != nil {
		<-f.gate
	}
	return f.videoPath, f.err
}

type fakeEmbedder struct{}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) (pgvector.Vector, error) {
	return pgvector.NewVector([]float32{0.1, 0.2, 0.3}), nil
}
