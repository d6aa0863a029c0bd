package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fleece-labs/fleece-api/handlers"
	"github.com/fleece-labs/fleece-api/services"
	"github.com/fleece-labs/fleece-api/storage"
)

// SetupCardRoutes wires the static catalog and recommendation routes.
func SetupCardRoutes(rg *gin.RouterGroup, catalog *services.CatalogService) {
	h := &handlers.CardsHandler{
		Catalog:     catalog,
		Recommender: services.NewRecommendationService(catalog),
	}

	rg.GET("/cards", h.GetCards)
	rg.GET("/cards/templates", h.GetTemplates)
	rg.POST("/cards/recommendations", h.Recommend)
}

// SetupImageRoutes wires the card-art endpoints.
func SetupImageRoutes(rg *gin.RouterGroup, images *services.ImageService) {
	h := &handlers.ImagesHandler{Images: images}

	rg.GET("/images", h.GetImage)
	rg.POST("/images/preload", h.PreloadImages)
}

// SetupMyCardRoutes wires the portfolio CRUD and insights routes.
func SetupMyCardRoutes(rg *gin.RouterGroup, store *storage.CardStore, wsHandler *handlers.WSHandler) {
	h := &handlers.MyCardsHandler{
		Store:    store,
		Insights: services.NewInsightsService(),
		WS:       wsHandler,
	}

	rg.GET("/mycards", h.ListCards)
	rg.POST("/mycards", h.CreateCard)
	rg.PUT("/mycards/:id", h.UpdateCard)
	rg.DELETE("/mycards/:id", h.DeleteCard)
	rg.GET("/mycards/insights", h.GetInsights)
}

// SetupChatRoutes wires the assistant routes.
func SetupChatRoutes(rg *gin.RouterGroup, chat *services.ChatService) {
	h := &handlers.ChatHandler{Chat: chat}

	rg.POST("/chat", h.SendMessage)
	rg.POST("/chat/new", h.NewChat)
	rg.GET("/chat/history", h.GetHistory)
}
