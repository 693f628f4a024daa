package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"memoria/internal/models/db_models"
	"memoria/internal/models/request_models"
	"memoria/pkg/utils"
)

func newContributionHarness(t *testing.T) (ContributionServiceInterface, *fakeContributionRepo, *fakeMemorialRepo) {
	t.Helper()
	contributions := newFakeContributionRepo()
	memorials := newFakeMemorialRepo()
	memorials.add("jane-doe")
	return NewContributionService(contributions, memorials), contributions, memorials
}

func TestCreateDraft(t *testing.T) {
	svc, _, _ := newContributionHarness(t)
	author := Author{ID: uuid.New(), Verified: true}

	resp, err := svc.CreateDraft(context.Background(), "jane-doe", author, request_models.CreateContributionRequest{
		Kind:       "condolence",
		AuthorName: "A. Friend",
		Content:    "With sympathy.",
	})
	require.NoError(t, err)

	assert.Equal(t, string(db_models.StatusDraft), resp.Status)
	assert.Equal(t, author.ID.String(), resp.AuthorID)

	_, err = svc.CreateDraft(context.Background(), "nobody", author, request_models.CreateContributionRequest{
		Kind:       "condolence",
		AuthorName: "A. Friend",
	})
	assert.ErrorIs(t, err, utils.ErrNotFound)

	_, err = svc.CreateDraft(context.Background(), "jane-doe", author, request_models.CreateContributionRequest{
		Kind:       "guestbook",
		AuthorName: "A. Friend",
	})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestUpdateDraftRules(t *testing.T) {
	svc, contributions, _ := newContributionHarness(t)
	author := Author{ID: uuid.New(), Verified: true}

	created, err := svc.CreateDraft(context.Background(), "jane-doe", author, request_models.CreateContributionRequest{
		Kind:       "memory",
		AuthorName: "A. Friend",
	})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	decoration := "golden-frame"
	updated, err := svc.UpdateDraft(context.Background(), id, author.ID, request_models.UpdateContributionRequest{
		Decoration: &decoration,
	})
	require.NoError(t, err)
	assert.Equal(t, "golden-frame", updated.Decoration)

	// Another author cannot even observe the draft.
	_, err = svc.UpdateDraft(context.Background(), id, uuid.New(), request_models.UpdateContributionRequest{
		Decoration: &decoration,
	})
	assert.ErrorIs(t, err, utils.ErrNotFound)

	// Published contributions are no longer editable.
	require.NoError(t, contributions.TransitionFromDraft(context.Background(), id, db_models.StatusPublished))
	_, err = svc.UpdateDraft(context.Background(), id, author.ID, request_models.UpdateContributionRequest{
		Decoration: &decoration,
	})
	assert.ErrorIs(t, err, utils.ErrInvalidState)
}

func TestListByMemorialVisibility(t *testing.T) {
	svc, contributions, _ := newContributionHarness(t)
	author := Author{ID: uuid.New(), Verified: true}
	stranger := uuid.New()

	created, err := svc.CreateDraft(context.Background(), "jane-doe", author, request_models.CreateContributionRequest{
		Kind:       "condolence",
		AuthorName: "A. Friend",
		Content:    "With sympathy.",
	})
	require.NoError(t, err)

	// Draft is visible to its author only.
	own, err := svc.ListByMemorial(context.Background(), "jane-doe", author.ID, 1, 20)
	require.NoError(t, err)
	assert.Len(t, own, 1)

	others, err := svc.ListByMemorial(context.Background(), "jane-doe", stranger, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, others)

	require.NoError(t, contributions.TransitionFromDraft(context.Background(), uuid.MustParse(created.ID), db_models.StatusPublished))
	others, err = svc.ListByMemorial(context.Background(), "jane-doe", stranger, 1, 20)
	require.NoError(t, err)
	assert.Len(t, others, 1)
}
