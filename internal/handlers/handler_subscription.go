package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/vidora-app/vidora_backend/internal/core/ports/services"
	"github.com/vidora-app/vidora_backend/internal/dto"
	"github.com/vidora-app/vidora_backend/internal/middleware"
)

// subscriptionHandler handles channel subscription requests.
type subscriptionHandler struct {
	subscriptionService portssvc.SubscriptionSvcFacade
}

func newSubscriptionHandler(ss portssvc.SubscriptionSvcFacade) *subscriptionHandler {
	return &subscriptionHandler{subscriptionService: ss}
}

// registerSubscriptionRoutes registers all subscription routes. Every route
// requires authentication.
func registerSubscriptionRoutes(rg *gin.RouterGroup, subscriptionService portssvc.SubscriptionSvcFacade) {
	h := newSubscriptionHandler(subscriptionService)

	subs := rg.Group("/subscriptions")
	{
		subs.POST("/toggle/:channelID", h.toggleSubscription)
		subs.GET("/channel/:channelID/subscribers", h.listChannelSubscribers)
		subs.GET("/subscribed", h.listSubscribedChannels)
	}
}

// toggleSubscription godoc
// @Summary Toggle a channel subscription
// @Description Subscribes the authenticated user to the channel, or unsubscribes when already subscribed.
// @Tags subscriptions
// @Produce json
// @Param channelID path string true "Channel user ID"
// @Success 200 {object} dto.ToggleSubscriptionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /subscriptions/toggle/{channelID} [post]
func (h *subscriptionHandler) toggleSubscription(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	channelID := c.Param("channelID")

	subscribed, err := h.subscriptionService.ToggleSubscription(c.Request.Context(), userID, channelID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToggleSubscriptionResponse{
		ChannelID:  channelID,
		Subscribed: subscribed,
	})
}

// listChannelSubscribers godoc
// @Summary List a channel's subscribers
// @Tags subscriptions
// @Produce json
// @Param channelID path string true "Channel user ID"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.SubscriberListResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /subscriptions/channel/{channelID}/subscribers [get]
func (h *subscriptionHandler) listChannelSubscribers(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	subscribers, err := h.subscriptionService.ListChannelSubscribers(c.Request.Context(), c.Param("channelID"), params.Limit, params.Offset)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SubscriberListResponse{Subscribers: dto.ToUserResponses(subscribers)})
}

// listSubscribedChannels godoc
// @Summary List channels the user follows
// @Tags subscriptions
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.SubscribedChannelsResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /subscriptions/subscribed [get]
func (h *subscriptionHandler) listSubscribedChannels(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	channels, err := h.subscriptionService.ListSubscribedChannels(c.Request.Context(), userID, params.Limit, params.Offset)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SubscribedChannelsResponse{Channels: dto.ToUserResponses(channels)})
}
