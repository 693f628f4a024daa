package services

import (
	"context"
	"strings"

	"memoria/internal/models/db_models"
)

// AutoApprover decides whether a contribution publishes immediately or
// enters manual review. Callers treat any error as "send to review".
type AutoApprover interface {
	ShouldAutoApprove(ctx context.Context, contribution *db_models.Contribution) (bool, error)
}

type WordListApprover struct {
	flagged []string
}

func NewWordListApprover(flagged []string) *WordListApprover {
	if len(flagged) == 0 {
		flagged = []string{"spam", "viagra", "casino", "http://", "https://"}
	}
	return &WordListApprover{flagged: flagged}
}

func (a *WordListApprover) ShouldAutoApprove(ctx context.Context, contribution *db_models.Contribution) (bool, error) {

	if !contribution.AuthorVerified {
		return false, nil
	}

	var text string
	switch contribution.Kind {
	case db_models.KindMemory:
		text = contribution.AuthorName
	case db_models.KindCondolence:
		text = contribution.Content + " " + contribution.AuthorName
	case db_models.KindDonation:
		text = contribution.AuthorName
	default:
		return false, nil
	}

	lowered := strings.ToLower(text)
	for _, word := range a.flagged {
		if strings.Contains(lowered, word) {
			return false, nil
		}
	}

	return true, nil
}
