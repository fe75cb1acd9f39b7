package messages

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vahc/jambohub/pkg/jambohub/auth"
	"github.com/vahc/jambohub/pkg/jambohub/models"
	"github.com/vahc/jambohub/pkg/jambohub/notify"
	"gorm.io/gorm"
)

// Handler handles message feed requests
type Handler struct {
	db         *gorm.DB
	feed       *Feed
	dispatcher *notify.Dispatcher
}

// NewHandler creates a new messages handler. The dispatcher may be nil
// when notification delivery is not configured.
func NewHandler(db *gorm.DB, dispatcher *notify.Dispatcher) *Handler {
	return &Handler{db: db, feed: NewFeed(db), dispatcher: dispatcher}
}

// PostRequest represents the post-message request body
type PostRequest struct {
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
}

// AuthorResponse represents message author data in responses
type AuthorResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// MessageResponse represents a message in responses
type MessageResponse struct {
	ID        uint           `json:"id"`
	Content   string         `json:"content"`
	ImageURL  string         `json:"image_url,omitempty"`
	Pinned    bool           `json:"pinned"`
	CreatedAt string         `json:"created_at"`
	Author    AuthorResponse `json:"author"`
}

func toMessageResponse(msg *models.Message) MessageResponse {
	return MessageResponse{
		ID:        msg.ID,
		Content:   msg.Content,
		ImageURL:  msg.ImageURL,
		Pinned:    msg.Pinned,
		CreatedAt: msg.CreatedAt.UTC().Format(time.RFC3339),
		Author: AuthorResponse{
			ID:   msg.Author.ID,
			Name: msg.Author.Name,
			Role: string(msg.Author.Role),
		},
	}
}

// List returns the messages in a channel
// @Summary List channel messages
// @Description Get all messages in a channel, oldest first
// @Tags messages
// @Produce json
// @Param id path int true "Channel ID"
// @Success 200 {array} MessageResponse
// @Failure 403 {object} map[string]string "Access denied"
// @Failure 404 {object} map[string]string "Channel not found"
// @Security BearerAuth
// @Router /channels/{id}/messages [get]
func (h *Handler) List(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	channelID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid channel ID"})
		return
	}

	msgs, err := h.feed.List(user, uint(channelID))
	if err != nil {
		switch {
		case errors.Is(err, ErrChannelNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Channel not found"})
		case errors.Is(err, ErrAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		}
		return
	}

	responses := make([]MessageResponse, len(msgs))
	for i := range msgs {
		responses[i] = toMessageResponse(&msgs[i])
	}
	c.JSON(http.StatusOK, responses)
}

// Post creates a message in a channel
// @Summary Post a message
// @Description Post a message with text and/or an image to a channel
// @Tags messages
// @Accept json
// @Produce json
// @Param id path int true "Channel ID"
// @Param request body PostRequest true "Message content"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} map[string]string "Empty message"
// @Failure 403 {object} map[string]string "Posting not allowed"
// @Failure 404 {object} map[string]string "Channel not found"
// @Security BearerAuth
// @Router /channels/{id}/messages [post]
func (h *Handler) Post(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	channelID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid channel ID"})
		return
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.feed.Post(user, uint(channelID), req.Content, req.ImageURL)
	if err != nil {
		switch {
		case errors.Is(err, ErrChannelNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Channel not found"})
		case errors.Is(err, ErrAccessDenied):
			// Distinct from validation and transport failures so the
			// client can show "you cannot post here" specifically.
			c.JSON(http.StatusForbidden, gin.H{"error": "You cannot post in this channel"})
		case errors.Is(err, ErrEmptyMessage):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message must have text or an image"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post message"})
		}
		return
	}

	if h.dispatcher != nil {
		if channel, cerr := h.feed.Channel(uint(channelID)); cerr == nil {
			h.dispatcher.DispatchMessage(channel, user, msg)
		}
	}

	c.JSON(http.StatusCreated, toMessageResponse(msg))
}

// TogglePin flips the pinned state of a message
// @Summary Toggle message pin
// @Description Pin or unpin a message (admin and adult leaders only)
// @Tags messages
// @Produce json
// @Param id path int true "Message ID"
// @Success 200 {object} map[string]bool
// @Failure 403 {object} map[string]string "Permission denied"
// @Failure 404 {object} map[string]string "Message not found"
// @Security BearerAuth
// @Router /messages/{id}/pin [post]
func (h *Handler) TogglePin(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	messageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	msg, err := h.feed.TogglePin(user, uint(messageID))
	if err != nil {
		switch {
		case errors.Is(err, ErrAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
		case errors.Is(err, ErrMessageNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update message"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"pinned": msg.Pinned})
}

// RegisterRoutes registers message routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/channels/:id/messages", h.List)
	rg.POST("/channels/:id/messages", h.Post)
	rg.POST("/messages/:id/pin", h.TogglePin)
}
