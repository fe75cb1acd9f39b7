// Package admin provides the administrative user management surface.
package admin

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vahc/jambohub/pkg/jambohub/auth"
	"github.com/vahc/jambohub/pkg/jambohub/models"
	"gorm.io/gorm"
)

// Handler handles admin requests
type Handler struct {
	db              *gorm.DB
	defaultPassword string
}

// NewHandler creates a new admin handler
func NewHandler(db *gorm.DB, defaultPassword string) *Handler {
	return &Handler{db: db, defaultPassword: defaultPassword}
}

// CreateUserRequest represents the request to create a user
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"role" binding:"required"`
	Unit     string `json:"unit"`
	Password string `json:"password"`
}

// UpdateUserRequest represents the request to update a user
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	Unit     *string `json:"unit"`
	Active   *bool   `json:"active"`
	Password *string `json:"password"`
}

// StatsResponse represents system statistics
type StatsResponse struct {
	TotalUsers     int64 `json:"total_users"`
	ActiveUsers    int64 `json:"active_users"`
	TotalUnits     int64 `json:"total_units"`
	TotalChannels  int64 `json:"total_channels"`
	TotalMessages  int64 `json:"total_messages"`
	PinnedMessages int64 `json:"pinned_messages"`
	AdminUsers     int64 `json:"admin_users"`
}

// ListUsers returns all users (admin only)
// @Summary List users
// @Tags admin
// @Produce json
// @Param q query string false "Search by name or email"
// @Param role query string false "Filter by role"
// @Param unit query string false "Filter by unit"
// @Success 200 {array} auth.UserResponse
// @Security BearerAuth
// @Router /admin/users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	query := h.db.Order("name ASC")

	if search := c.Query("q"); search != "" {
		query = query.Where("email LIKE ? OR name LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if unit := c.Query("unit"); unit != "" {
		query = query.Where("unit = ?", unit)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	responses := make([]auth.UserResponse, len(users))
	for i := range users {
		responses[i] = auth.ToUserResponse(&users[i])
	}
	c.JSON(http.StatusOK, responses)
}

// CreateUser creates a user (admin only). New accounts get the default
// password unless one is supplied.
// @Summary Create a user
// @Tags admin
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "User details"
// @Success 201 {object} auth.UserResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /admin/users [post]
func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, ok := models.ParseRole(req.Role)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
		return
	}

	password := req.Password
	if password == "" {
		password = h.defaultPassword
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}

	user := models.User{
		Name:               strings.TrimSpace(req.Name),
		Email:              email,
		PasswordHash:       hash,
		Role:               role,
		Unit:               strings.TrimSpace(req.Unit),
		Active:             true,
		EmailNotifications: true,
	}
	if err := h.db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, auth.ToUserResponse(&user))
}

// GetUser returns a single user by ID (admin only)
// @Summary Get a user
// @Tags admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} auth.UserResponse
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /admin/users/{id} [get]
func (h *Handler) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, auth.ToUserResponse(&user))
}

// UpdateUser updates a user (admin only)
// @Summary Update a user
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body UpdateUserRequest true "Fields to update"
// @Success 200 {object} auth.UserResponse
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /admin/users/{id} [put]
func (h *Handler) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		updates["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Role != nil {
		role, ok := models.ParseRole(*req.Role)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
			return
		}
		updates["role"] = role
	}
	if req.Unit != nil {
		updates["unit"] = strings.TrimSpace(*req.Unit)
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
			return
		}
		updates["password_hash"] = hash
	}

	if len(updates) > 0 {
		if err := h.db.Model(&user).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}
	}

	c.JSON(http.StatusOK, auth.ToUserResponse(&user))
}

// DeleteUser deletes a user (admin only). Admins cannot delete their
// own account.
// @Summary Delete a user
// @Tags admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Cannot delete yourself"
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /admin/users/{id} [delete]
func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	current, _ := auth.CurrentUser(c)
	if current != nil && current.ID == uint(id) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete your own account"})
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := h.db.Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// ResetPassword resets a user's password to the default (admin only)
// @Summary Reset a user's password
// @Tags admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /admin/users/{id}/reset-password [post]
func (h *Handler) ResetPassword(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	hash, err := auth.HashPassword(h.defaultPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}

	if err := h.db.Model(&user).Updates(map[string]interface{}{
		"password_hash":    hash,
		"password_changed": false,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset to default"})
}

// Stats returns system statistics (admin only)
// @Summary System statistics
// @Tags admin
// @Produce json
// @Success 200 {object} StatsResponse
// @Security BearerAuth
// @Router /admin/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	var stats StatsResponse
	h.db.Model(&models.User{}).Count(&stats.TotalUsers)
	h.db.Model(&models.User{}).Where("active = ?", true).Count(&stats.ActiveUsers)
	h.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&stats.AdminUsers)
	h.db.Model(&models.Unit{}).Count(&stats.TotalUnits)
	h.db.Model(&models.Channel{}).Count(&stats.TotalChannels)
	h.db.Model(&models.Message{}).Count(&stats.TotalMessages)
	h.db.Model(&models.Message{}).Where("pinned = ?", true).Count(&stats.PinnedMessages)

	c.JSON(http.StatusOK, stats)
}

// RegisterRoutes registers admin routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users", h.ListUsers)
	rg.POST("/users", h.CreateUser)
	rg.GET("/users/:id", h.GetUser)
	rg.PUT("/users/:id", h.UpdateUser)
	rg.DELETE("/users/:id", h.DeleteUser)
	rg.POST("/users/:id/reset-password", h.ResetPassword)
	rg.GET("/stats", h.Stats)
}
