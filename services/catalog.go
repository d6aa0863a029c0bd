package services

import (
	"strings"

	"github.com/fleece-labs/fleece-api/models"
)

// CatalogService serves the static recommendable-card catalog and the
// templates used by the add-card form. The data is fixed at build time;
// a real deployment would source it from a partner feed.
type CatalogService struct {
	cards     []models.Card
	templates []models.CardTemplate
}

func NewCatalogService() *CatalogService {
	return &CatalogService{
		cards: []models.Card{
			{
				Name:         "Chase Sapphire Preferred",
				AnnualFee:    "$95",
				Rewards:      "5x on travel purchased through Chase, 3x on dining, 2x on other travel",
				WelcomeBonus: "60,000 points after spending $4,000 in first 3 months",
				ImageURL:     "https://creditcards.chase.com/K-Marketplace/images/cardart/sapphire_preferred_card.png",
				BestFor:      "Travel rewards with moderate annual fee",
			},
			{
				Name:         "American Express Gold",
				AnnualFee:    "$250",
				Rewards:      "4x at restaurants, 4x at U.S. supermarkets (up to $25,000/year), 3x on flights",
				WelcomeBonus: "60,000 points after spending $4,000 in first 6 months",
				ImageURL:     "https://icm.aexp-static.com/Internet/Acquisition/US_en/AppContent/OneSite/category/cardarts/gold-card.png",
				BestFor:      "Dining and grocery rewards",
			},
			{
				Name:         "Citi Double Cash",
				AnnualFee:    "$0",
				Rewards:      "2% on all purchases (1% when you buy, 1% when you pay)",
				WelcomeBonus: "None",
				ImageURL:     "https://www.citi.com/CRD/images/citi-double-cash/card_2.png",
				BestFor:      "Simple cash back with no annual fee",
			},
			{
				Name:         "Capital One Venture",
				AnnualFee:    "$95",
				Rewards:      "2x miles on all purchases",
				WelcomeBonus: "75,000 miles after spending $4,000 in first 3 months",
				ImageURL:     "https://ecm.capitalone.com/WCM/card/products/venture-card-art/tablet.png",
				BestFor:      "Travel rewards with flexible redemption options",
			},
			{
				Name:         "Discover it Cash Back",
				AnnualFee:    "$0",
				Rewards:      "5% cash back in rotating categories (up to $1,500 per quarter), 1% on all else",
				WelcomeBonus: "Cash back match at end of first year",
				ImageURL:     "https://www.discover.com/content/dam/discover/en_us/credit-cards/card-acquisition/rewards/it-chrome/images/discover-it-cashback-match-card-art.png",
				BestFor:      "Rotating category cash back",
			},
		},
		templates: []models.CardTemplate{
			{Name: "Chase Sapphire Preferred", AnnualFee: "$95", Rewards: "5x on travel purchased through Chase, 3x on dining, 2x on other travel", ImageURL: "https://creditcards.chase.com/K-Marketplace/images/cardart/sapphire_preferred_card.png"},
			{Name: "American Express Gold", AnnualFee: "$250", Rewards: "4x at restaurants, 4x at U.S. supermarkets (up to $25,000/year), 3x on flights", ImageURL: "https://icm.aexp-static.com/Internet/Acquisition/US_en/AppContent/OneSite/category/cardarts/gold-card.png"},
			{Name: "Citi Double Cash", AnnualFee: "$0", Rewards: "2% on all purchases (1% when you buy, 1% when you pay)", ImageURL: "https://www.citi.com/CRD/images/citi-double-cash/card_2.png"},
			{Name: "Capital One Venture", AnnualFee: "$95", Rewards: "2x miles on all purchases", ImageURL: "https://ecm.capitalone.com/WCM/card/products/venture-card-art/tablet.png"},
			{Name: "Custom Card", AnnualFee: "$0", Rewards: "Enter your own rewards", ImageURL: ""},
		},
	}
}

// Cards returns the catalog, optionally filtered by annual fee values
// (exact match, e.g. "$0") and a reward-type keyword matched against
// the rewards and best-for text.
func (s *CatalogService) Cards(annualFees []string, rewardType string) []models.Card {
	out := make([]models.Card, 0, len(s.cards))
	for _, card := range s.cards {
		if len(annualFees) > 0 && !containsFold(annualFees, card.AnnualFee) {
			continue
		}
		if rewardType != "" {
			haystack := strings.ToLower(card.Rewards + " " + card.BestFor)
			if !strings.Contains(haystack, strings.ToLower(rewardType)) {
				continue
			}
		}
		out = append(out, card)
	}
	return out
}

// Find returns the catalog entry with the given name, or nil.
func (s *CatalogService) Find(name string) *models.Card {
	for i := range s.cards {
		if s.cards[i].Name == name {
			return &s.cards[i]
		}
	}
	return nil
}

func (s *CatalogService) Templates() []models.CardTemplate {
	return s.templates
}

// ImageURLs lists the catalog image URLs in display order, used to warm
// the image cache at startup.
func (s *CatalogService) ImageURLs() []string {
	urls := make([]string, 0, len(s.cards))
	for _, card := range s.cards {
		urls = append(urls, card.ImageURL)
	}
	return urls
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}
