package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fleece-labs/fleece-api/models"
	"github.com/fleece-labs/fleece-api/services"
	"github.com/fleece-labs/fleece-api/storage"
	"github.com/fleece-labs/fleece-api/utils"
)

const defaultCardsPerPage = 3

type MyCardsHandler struct {
	Store    *storage.CardStore
	Insights *services.InsightsService
	WS       *WSHandler
}

// ListCards returns the portfolio, sorted and paginated. sort is one of
// name, annual_fee, credit_limit, date_added; page is zero-based.
func (h *MyCardsHandler) ListCards(c *gin.Context) {
	cards, err := h.Store.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading your cards"})
		return
	}

	storage.SortUserCards(cards, c.DefaultQuery("sort", "name"))

	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultCardsPerPage)))
	if page < 0 {
		page = 0
	}
	if perPage <= 0 {
		perPage = defaultCardsPerPage
	}

	start := page * perPage
	if start > len(cards) {
		start = len(cards)
	}
	end := start + perPage
	if end > len(cards) {
		end = len(cards)
	}

	c.JSON(http.StatusOK, gin.H{
		"cards":    cards[start:end],
		"total":    len(cards),
		"page":     page,
		"per_page": perPage,
	})
}

// CreateCard adds a card to the portfolio. DateAdded is stamped
// server-side.
func (h *MyCardsHandler) CreateCard(c *gin.Context) {
	var req models.CreateUserCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	card := models.UserCard{
		ID:          uuid.New().String(),
		Name:        req.Name,
		LastFour:    req.LastFour,
		AnnualFee:   req.AnnualFee,
		CreditLimit: req.CreditLimit,
		Rewards:     req.Rewards,
		Expiration:  req.Expiration,
		ImageURL:    req.ImageURL,
		DateAdded:   time.Now().Format("2006-01-02"),
	}

	if err := h.Store.Add(card); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving your cards"})
		return
	}

	utils.LogCardAction("Added", card.ID, card.Name)
	h.WS.BroadcastPortfolioUpdate("card_added", card.Name)
	c.JSON(http.StatusCreated, card)
}

// UpdateCard replaces the editable fields of a stored card.
func (h *MyCardsHandler) UpdateCard(c *gin.Context) {
	cardID := c.Param("id")

	existing, err := h.Store.Get(cardID)
	if err != nil {
		if errors.Is(err, storage.ErrCardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading your cards"})
		return
	}

	var req models.UpdateUserCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	card := models.UserCard{
		ID:          existing.ID,
		Name:        req.Name,
		LastFour:    req.LastFour,
		AnnualFee:   req.AnnualFee,
		CreditLimit: req.CreditLimit,
		Rewards:     req.Rewards,
		Expiration:  req.Expiration,
		ImageURL:    req.ImageURL,
		DateAdded:   existing.DateAdded,
	}

	if err := h.Store.Update(card); err != nil {
		if errors.Is(err, storage.ErrCardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving your cards"})
		return
	}

	utils.LogCardAction("Updated", card.ID, card.Name)
	h.WS.BroadcastPortfolioUpdate("card_updated", card.Name)
	c.JSON(http.StatusOK, card)
}

// DeleteCard removes a card from the portfolio.
func (h *MyCardsHandler) DeleteCard(c *gin.Context) {
	cardID := c.Param("id")

	if err := h.Store.Delete(cardID); err != nil {
		if errors.Is(err, storage.ErrCardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving your cards"})
		return
	}

	utils.LogCardAction("Removed", cardID, "")
	h.WS.BroadcastPortfolioUpdate("card_removed", "")
	c.JSON(http.StatusOK, gin.H{"message": "Card removed"})
}

// GetInsights returns portfolio totals and the per-card chart series.
func (h *MyCardsHandler) GetInsights(c *gin.Context) {
	cards, err := h.Store.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading your cards"})
		return
	}

	c.JSON(http.StatusOK, h.Insights.Portfolio(cards))
}
