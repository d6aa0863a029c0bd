package services

import "github.com/fleece-labs/fleece-api/models"

// RecommendationService maps a monthly spending profile to card picks.
// Thresholds are dollar amounts per month; the first matching rule wins
// as the primary recommendation.
type RecommendationService struct {
	catalog *CatalogService
}

func NewRecommendationService(catalog *CatalogService) *RecommendationService {
	return &RecommendationService{catalog: catalog}
}

func (s *RecommendationService) Recommend(profile models.SpendingProfile) []models.Recommendation {
	total := profile.Total()

	var recs []models.Recommendation
	switch {
	case profile.Travel > 300:
		recs = append(recs, s.rec("Chase Sapphire Preferred", "Great for your travel spending!"))
	case profile.Dining > 400:
		recs = append(recs, s.rec("American Express Gold", "Perfect for your dining habits!"))
	case profile.Groceries > 500:
		recs = append(recs, s.rec("Blue Cash Preferred", "6% cash back on groceries!"))
	case profile.Gas > 200:
		recs = append(recs, s.rec("Wells Fargo Autograph", "Great for gas stations and travel!"))
	case total > 2000:
		recs = append(recs, s.rec("Citi Double Cash", "Solid 2% back on all your spending!"))
	default:
		recs = append(recs, s.rec("Discover it Cash Back", "Good all-around option!"))
	}

	// High overall spend earns a flat-rate secondary pick.
	if total > 3000 && !hasCard(recs, "Citi Double Cash") {
		recs = append(recs, s.rec("Citi Double Cash", "Good for all other spending categories"))
	}

	return recs
}

func (s *RecommendationService) rec(name, reason string) models.Recommendation {
	return models.Recommendation{
		CardName: name,
		Reason:   reason,
		Card:     s.catalog.Find(name),
	}
}

func hasCard(recs []models.Recommendation, name string) bool {
	for _, r := range recs {
		if r.CardName == name {
			return true
		}
	}
	return false
}
