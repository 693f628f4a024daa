package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"memoria/internal/models/db_models"
)

func TestWordListApprover(t *testing.T) {
	approver := NewWordListApprover(nil)
	ctx := context.Background()

	tests := []struct {
		name         string
		contribution db_models.Contribution
		want         bool
	}{
		{
			name: "verified clean condolence auto approves",
			contribution: db_models.Contribution{
				Kind:           db_models.KindCondolence,
				Content:        "You are in our thoughts.",
				AuthorName:     "A. Friend",
				AuthorVerified: true,
			},
			want: true,
		},
		{
			name: "unverified author goes to review",
			contribution: db_models.Contribution{
				Kind:           db_models.KindCondolence,
				Content:        "You are in our thoughts.",
				AuthorName:     "A. Friend",
				AuthorVerified: false,
			},
			want: false,
		},
		{
			name: "flagged content goes to review",
			contribution: db_models.Contribution{
				Kind:           db_models.KindCondolence,
				Content:        "Visit https://spam.example for deals",
				AuthorName:     "A. Friend",
				AuthorVerified: true,
			},
			want: false,
		},
		{
			name: "verified donation auto approves",
			contribution: db_models.Contribution{
				Kind:           db_models.KindDonation,
				WreathTier:     "rose",
				AuthorName:     "A. Friend",
				AuthorVerified: true,
			},
			want: true,
		},
		{
			name:         "unknown kind goes to review",
			contribution: db_models.Contribution{Kind: "guestbook", AuthorVerified: true},
			want:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := approver.ShouldAutoApprove(ctx, &tt.contribution)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
