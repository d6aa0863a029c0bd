package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fleece-labs/fleece-api/models"
	"github.com/fleece-labs/fleece-api/services"
)

type CardsHandler struct {
	Catalog     *services.CatalogService
	Recommender *services.RecommendationService
}

// GetCards returns the static catalog. Filters: repeated annual_fee
// query params (exact values like "$0") and a reward_type keyword.
func (h *CardsHandler) GetCards(c *gin.Context) {
	annualFees := c.QueryArray("annual_fee")
	rewardType := c.Query("reward_type")

	cards := h.Catalog.Cards(annualFees, rewardType)
	c.JSON(http.StatusOK, gin.H{
		"cards": cards,
		"total": len(cards),
	})
}

// GetTemplates returns the add-card form templates.
func (h *CardsHandler) GetTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": h.Catalog.Templates()})
}

// Recommend turns a monthly spending profile into ranked card picks.
func (h *CardsHandler) Recommend(c *gin.Context) {
	var profile models.SpendingProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_spending":  profile.Total(),
		"recommendations": h.Recommender.Recommend(profile),
	})
}
