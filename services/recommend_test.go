package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleece-labs/fleece-api/models"
)

func TestRecommend_Rules(t *testing.T) {
	svc := NewRecommendationService(NewCatalogService())

	cases := []struct {
		name    string
		profile models.SpendingProfile
		primary string
	}{
		{"heavy travel", models.SpendingProfile{Travel: 500}, "Chase Sapphire Preferred"},
		{"heavy dining", models.SpendingProfile{Dining: 450}, "American Express Gold"},
		{"heavy groceries", models.SpendingProfile{Groceries: 600}, "Blue Cash Preferred"},
		{"heavy gas", models.SpendingProfile{Gas: 250}, "Wells Fargo Autograph"},
		{"high total", models.SpendingProfile{Other: 2500}, "Citi Double Cash"},
		{"modest spender", models.SpendingProfile{Other: 100}, "Discover it Cash Back"},
		{"travel beats dining", models.SpendingProfile{Travel: 400, Dining: 900}, "Chase Sapphire Preferred"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recs := svc.Recommend(tc.profile)
			require.NotEmpty(t, recs)
			assert.Equal(t, tc.primary, recs[0].CardName)
			assert.NotEmpty(t, recs[0].Reason)
		})
	}
}

func TestRecommend_SecondaryForHighTotal(t *testing.T) {
	svc := NewRecommendationService(NewCatalogService())

	recs := svc.Recommend(models.SpendingProfile{Travel: 400, Other: 3000})
	require.Len(t, recs, 2)
	assert.Equal(t, "Chase Sapphire Preferred", recs[0].CardName)
	assert.Equal(t, "Citi Double Cash", recs[1].CardName)
}

func TestRecommend_NoDuplicateSecondary(t *testing.T) {
	svc := NewRecommendationService(NewCatalogService())

	// Primary is already Citi Double Cash; the secondary must not repeat it.
	recs := svc.Recommend(models.SpendingProfile{Other: 4000})
	require.Len(t, recs, 1)
	assert.Equal(t, "Citi Double Cash", recs[0].CardName)
}

func TestRecommend_CatalogDetailsAttached(t *testing.T) {
	svc := NewRecommendationService(NewCatalogService())

	recs := svc.Recommend(models.SpendingProfile{Travel: 500})
	require.NotEmpty(t, recs)
	require.NotNil(t, recs[0].Card)
	assert.Equal(t, "$95", recs[0].Card.AnnualFee)

	// Blue Cash Preferred is recommended but not in the catalog.
	recs = svc.Recommend(models.SpendingProfile{Groceries: 600})
	require.NotEmpty(t, recs)
	assert.Nil(t, recs[0].Card)
}
