package models

// Card is one entry of the static recommendable-card catalog. The
// catalog is read-only; users add cards to their own portfolio as
// UserCard records instead.
type Card struct {
	Name         string `json:"name"`
	AnnualFee    string `json:"annual_fee"`
	Rewards      string `json:"rewards"`
	WelcomeBonus string `json:"welcome_bonus"`
	ImageURL     string `json:"image_url"`
	BestFor      string `json:"best_for"`
}

// CardTemplate pre-fills the add-card form. The "Custom Card" template
// has an empty image URL so the client shows the URL field.
type CardTemplate struct {
	Name      string `json:"name"`
	AnnualFee string `json:"annual_fee"`
	Rewards   string `json:"rewards"`
	ImageURL  string `json:"image_url"`
}

// UserCard is a card in the user's portfolio, persisted in the JSON
// card store. DateAdded is set server-side on creation (YYYY-MM-DD).
type UserCard struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	LastFour    string `json:"last_four"`
	AnnualFee   string `json:"annual_fee"`
	CreditLimit int    `json:"credit_limit"`
	Rewards     string `json:"rewards"`
	Expiration  string `json:"expiration"`
	ImageURL    string `json:"image_url"`
	DateAdded   string `json:"date_added"`
}

type CreateUserCardRequest struct {
	Name        string `json:"name" binding:"required"`
	LastFour    string `json:"last_four"`
	AnnualFee   string `json:"annual_fee"`
	CreditLimit int    `json:"credit_limit"`
	Rewards     string `json:"rewards"`
	Expiration  string `json:"expiration"`
	ImageURL    string `json:"image_url"`
}

type UpdateUserCardRequest struct {
	Name        string `json:"name" binding:"required"`
	LastFour    string `json:"last_four"`
	AnnualFee   string `json:"annual_fee"`
	CreditLimit int    `json:"credit_limit"`
	Rewards     string `json:"rewards"`
	Expiration  string `json:"expiration"`
	ImageURL    string `json:"image_url"`
}

// SpendingProfile is the monthly spending breakdown submitted by the
// recommendations form. Amounts are dollars per month.
type SpendingProfile struct {
	Travel    int `json:"travel"`
	Dining    int `json:"dining"`
	Groceries int `json:"groceries"`
	Gas       int `json:"gas"`
	Other     int `json:"other"`
}

// Total returns the summed monthly spending.
func (p SpendingProfile) Total() int {
	return p.Travel + p.Dining + p.Groceries + p.Gas + p.Other
}

// Recommendation pairs a card name with the reason it was picked. Card
// is non-nil when the name matches a catalog entry.
type Recommendation struct {
	CardName string `json:"card_name"`
	Reason   string `json:"reason"`
	Card     *Card  `json:"card,omitempty"`
}

// PortfolioInsights is the aggregate view of the user's portfolio plus
// per-card series the UI renders as bar charts.
type PortfolioInsights struct {
	TotalCards       int                `json:"total_cards"`
	TotalCreditLimit int                `json:"total_credit_limit"`
	TotalAnnualFees  int                `json:"total_annual_fees"`
	Cards            []CardInsightEntry `json:"cards"`
}

type CardInsightEntry struct {
	Name        string `json:"name"`
	AnnualFee   int    `json:"annual_fee"`
	CreditLimit int    `json:"credit_limit"`
}
