package services

import (
	"context"

	"github.com/google/uuid"
	"memoria/internal/models/db_models"
	"memoria/internal/models/request_models"
	"memoria/internal/models/response_models"
	"memoria/internal/repositories"
	"memoria/pkg/utils"
)

type Author struct {
	ID       uuid.UUID
	Name     string
	Verified bool
}

type ContributionServiceInterface interface {
	CreateDraft(ctx context.Context, memorialSlug string, author Author, request request_models.CreateContributionRequest) (*response_models.ContributionResponse, error)
	UpdateDraft(ctx context.Context, contributionID uuid.UUID, authorID uuid.UUID, request request_models.UpdateContributionRequest) (*response_models.ContributionResponse, error)
	ListByMemorial(ctx context.Context, memorialSlug string, callerID uuid.UUID, page int, pageSize int) ([]response_models.ContributionResponse, error)
}

type ContributionService struct {
	contributionRepo repositories.ContributionRepositoryInterface
	memorialRepo     repositories.MemorialRepositoryInterface
}

func NewContributionService(
	contributionRepo repositories.ContributionRepositoryInterface,
	memorialRepo repositories.MemorialRepositoryInterface,
) ContributionServiceInterface {
	return &ContributionService{
		contributionRepo: contributionRepo,
		memorialRepo:     memorialRepo,
	}
}

func (s *ContributionService) CreateDraft(ctx context.Context, memorialSlug string, author Author, request request_models.CreateContributionRequest) (*response_models.ContributionResponse, error) {

	memorial, err := s.memorialRepo.GetBySlug(ctx, memorialSlug)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if memorial == nil {
		return nil, utils.ErrNotFound
	}

	kind := db_models.ContributionKind(request.Kind)
	switch kind {
	case db_models.KindMemory, db_models.KindCondolence, db_models.KindDonation:
	default:
		return nil, utils.ErrInvalidInput
	}

	if request.DonationCount < 0 {
		return nil, utils.ErrInvalidInput
	}

	contribution := &db_models.Contribution{
		MemorialSlug:    memorialSlug,
		Kind:            kind,
		Status:          db_models.StatusDraft,
		AuthorID:        author.ID,
		AuthorName:      request.AuthorName,
		AuthorVerified:  author.Verified,
		AssetPath:       request.AssetPath,
		AssetDecoration: request.AssetDecoration,
		Decoration:      request.Decoration,
		Content:         request.Content,
		WreathTier:      request.WreathTier,
		DonationCount:   request.DonationCount,
	}

	if err := s.contributionRepo.CreateContribution(ctx, contribution); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return toContributionResponse(contribution), nil
}

func (s *ContributionService) UpdateDraft(ctx context.Context, contributionID uuid.UUID, authorID uuid.UUID, request request_models.UpdateContributionRequest) (*response_models.ContributionResponse, error) {

	contribution, err := s.contributionRepo.GetContributionByID(ctx, contributionID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if contribution == nil {
		return nil, utils.ErrNotFound
	}
	if contribution.AuthorID != authorID {
		return nil, utils.ErrNotFound
	}
	if !contribution.IsDraft() {
		return nil, utils.ErrInvalidState
	}

	if request.AssetPath != nil {
		contribution.AssetPath = *request.AssetPath
	}
	if request.AssetDecoration != nil {
		contribution.AssetDecoration = *request.AssetDecoration
	}
	if request.Decoration != nil {
		contribution.Decoration = *request.Decoration
	}
	if request.Content != nil {
		contribution.Content = *request.Content
	}
	if request.WreathTier != nil {
		contribution.WreathTier = *request.WreathTier
	}
	if request.DonationCount != nil {
		if *request.DonationCount < 0 {
			return nil, utils.ErrInvalidInput
		}
		contribution.DonationCount = *request.DonationCount
	}

	if err := s.contributionRepo.UpdateDraft(ctx, contribution); err != nil {
		return nil, err
	}

	return toContributionResponse(contribution), nil
}

func (s *ContributionService) ListByMemorial(ctx context.Context, memorialSlug string, callerID uuid.UUID, page int, pageSize int) ([]response_models.ContributionResponse, error) {

	contributions, err := s.contributionRepo.ListByMemorial(ctx, memorialSlug, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.ContributionResponse, 0, len(contributions))
	for i := range contributions {
		c := &contributions[i]
		// Drafts are only visible to their author.
		if c.Status == db_models.StatusDraft && c.AuthorID != callerID {
			continue
		}
		if c.Status == db_models.StatusRemoved || c.Status == db_models.StatusRejected {
			continue
		}
		responses = append(responses, *toContributionResponse(c))
	}
	return responses, nil
}

func toContributionResponse(c *db_models.Contribution) *response_models.ContributionResponse {
	return &response_models.ContributionResponse{
		ID:              c.ID.String(),
		MemorialSlug:    c.MemorialSlug,
		Kind:            string(c.Kind),
		Status:          string(c.Status),
		AuthorID:        c.AuthorID.String(),
		AuthorName:      c.AuthorName,
		AuthorVerified:  c.AuthorVerified,
		AssetPath:       c.AssetPath,
		AssetDecoration: c.AssetDecoration,
		Decoration:      c.Decoration,
		Content:         c.Content,
		WreathTier:      c.WreathTier,
		DonationCount:   c.DonationCount,
		TotalLikes:      c.TotalLikes,
		CreatedAt:       c.CreatedAt,
	}
}
