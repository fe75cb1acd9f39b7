// Package channels exposes the channel directory (the channels a user
// can see, grouped by type) and the admin channel management surface.
package channels

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vahc/jambohub/pkg/jambohub/access"
	"github.com/vahc/jambohub/pkg/jambohub/auth"
	"github.com/vahc/jambohub/pkg/jambohub/models"
	"gorm.io/gorm"
)

// Handler handles channel requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new channels handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// ChannelResponse represents a channel in directory responses
type ChannelResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon"`
	Type        string `json:"type"`
	Unit        string `json:"unit,omitempty"`
	CanPost     bool   `json:"can_post"`
}

// AdminChannelRequest represents the create/update channel body
type AdminChannelRequest struct {
	Name               string   `json:"name" binding:"required"`
	Description        string   `json:"description"`
	Icon               string   `json:"icon"`
	Type               string   `json:"type" binding:"required"`
	Unit               string   `json:"unit"`
	AllowedRoles       []string `json:"allowed_roles" binding:"required"`
	CanPostRoles       []string `json:"can_post_roles" binding:"required"`
	EmailNotifications *bool    `json:"email_notifications"`
	PushNotifications  *bool    `json:"push_notifications"`
}

// List returns the channels visible to the current user, grouped by
// type. Buckets with no channels are omitted; order within a bucket is
// creation order.
// @Summary List visible channels
// @Description Get the channels the current user can access, grouped by type
// @Tags channels
// @Produce json
// @Success 200 {object} map[string][]ChannelResponse
// @Security BearerAuth
// @Router /channels [get]
func (h *Handler) List(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var all []models.Channel
	if err := h.db.Where("active = ?", true).Order("created_at ASC, id ASC").Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch channels"})
		return
	}

	grouped := access.Grouped(access.Visible(user, all))

	response := make(map[string][]ChannelResponse, len(grouped))
	for chType, chans := range grouped {
		bucket := make([]ChannelResponse, len(chans))
		for i := range chans {
			bucket[i] = ChannelResponse{
				ID:          chans[i].ID,
				Name:        chans[i].Name,
				Description: chans[i].Description,
				Icon:        chans[i].Icon,
				Type:        string(chans[i].Type),
				Unit:        chans[i].Unit,
				CanPost:     access.CanPost(user, &chans[i]),
			}
		}
		response[string(chType)] = bucket
	}

	c.JSON(http.StatusOK, response)
}

// ListAll returns every channel including inactive ones (admin only)
// @Summary List all channels
// @Tags admin
// @Produce json
// @Success 200 {array} models.Channel
// @Security BearerAuth
// @Router /admin/channels [get]
func (h *Handler) ListAll(c *gin.Context) {
	var channels []models.Channel
	if err := h.db.Order("created_at ASC, id ASC").Find(&channels).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch channels"})
		return
	}
	c.JSON(http.StatusOK, channels)
}

func channelFromRequest(req *AdminChannelRequest, channel *models.Channel) (string, bool) {
	chType := models.ChannelType(req.Type)
	if !chType.Valid() {
		return "Invalid channel type", false
	}
	if chType == models.ChannelTypeUnit && strings.TrimSpace(req.Unit) == "" {
		return "Unit channels must name a unit", false
	}

	allowed := parseRoles(req.AllowedRoles)
	canPost := parseRoles(req.CanPostRoles)

	channel.Name = strings.TrimSpace(req.Name)
	channel.Description = req.Description
	if req.Icon != "" {
		channel.Icon = req.Icon
	}
	channel.Type = chType
	channel.Unit = strings.TrimSpace(req.Unit)
	channel.AllowedRoles = allowed
	channel.CanPostRoles = canPost
	if req.EmailNotifications != nil {
		channel.EmailNotifications = *req.EmailNotifications
	}
	if req.PushNotifications != nil {
		channel.PushNotifications = *req.PushNotifications
	}

	if !access.ValidatePostRoles(channel) {
		return "Post roles must be a subset of allowed roles", false
	}
	return "", true
}

func parseRoles(raw []string) models.RoleList {
	roles := make([]models.Role, 0, len(raw))
	for _, s := range raw {
		if r, ok := models.ParseRole(s); ok {
			roles = append(roles, r)
		}
	}
	return models.NewRoleList(roles...)
}

// Create creates a channel (admin only)
// @Summary Create a channel
// @Tags admin
// @Accept json
// @Produce json
// @Param request body AdminChannelRequest true "Channel definition"
// @Success 201 {object} models.Channel
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /admin/channels [post]
func (h *Handler) Create(c *gin.Context) {
	var req AdminChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	channel := models.Channel{
		Active:             true,
		EmailNotifications: true,
		PushNotifications:  true,
	}
	if msg, ok := channelFromRequest(&req, &channel); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if err := h.db.Create(&channel).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create channel"})
		return
	}
	c.JSON(http.StatusCreated, channel)
}

// Update updates a channel, including its notification flags (admin only)
// @Summary Update a channel
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Channel ID"
// @Param request body AdminChannelRequest true "Channel definition"
// @Success 200 {object} models.Channel
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Channel not found"
// @Security BearerAuth
// @Router /admin/channels/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid channel ID"})
		return
	}

	var channel models.Channel
	if err := h.db.First(&channel, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Channel not found"})
		return
	}

	var req AdminChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if msg, ok := channelFromRequest(&req, &channel); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if err := h.db.Save(&channel).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update channel"})
		return
	}
	c.JSON(http.StatusOK, channel)
}

// Delete deactivates a channel (admin only). The message log is kept.
// @Summary Delete a channel
// @Tags admin
// @Produce json
// @Param id path int true "Channel ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Channel not found"
// @Security BearerAuth
// @Router /admin/channels/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid channel ID"})
		return
	}

	var channel models.Channel
	if err := h.db.First(&channel, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Channel not found"})
		return
	}

	if err := h.db.Delete(&channel).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete channel"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Channel deleted"})
}

// RegisterRoutes registers the channel directory route
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/channels", h.List)
}

// RegisterAdminRoutes registers channel management routes
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/channels", h.ListAll)
	rg.POST("/channels", h.Create)
	rg.PUT("/channels/:id", h.Update)
	rg.DELETE("/channels/:id", h.Delete)
}
