package roster

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vahc/jambohub/pkg/jambohub/models"
	"gorm.io/gorm"
)

// Handler handles unit and import requests (admin only)
type Handler struct {
	db        *gorm.DB
	directory *Directory
	importer  *Importer
}

// NewHandler creates a new roster handler
func NewHandler(db *gorm.DB, defaultPassword string) *Handler {
	return &Handler{
		db:        db,
		directory: NewDirectory(db),
		importer:  NewImporter(db, defaultPassword),
	}
}

// UnitRequest represents the create/rename unit body
type UnitRequest struct {
	Name string `json:"name" binding:"required"`
}

// ImportRequest represents the bulk import body; data is the raw
// comma- or tab-separated text.
type ImportRequest struct {
	Data string `json:"data" binding:"required"`
}

// ListUnits returns all units
// @Summary List units
// @Tags admin
// @Produce json
// @Success 200 {array} models.Unit
// @Security BearerAuth
// @Router /admin/units [get]
func (h *Handler) ListUnits(c *gin.Context) {
	units, err := h.directory.ListUnits()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch units"})
		return
	}
	c.JSON(http.StatusOK, units)
}

// CreateUnit creates a unit and its paired channel
// @Summary Create a unit
// @Tags admin
// @Accept json
// @Produce json
// @Param request body UnitRequest true "Unit name"
// @Success 201 {object} models.Unit
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /admin/units [post]
func (h *Handler) CreateUnit(c *gin.Context) {
	var req UnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	unit, err := h.directory.CreateUnit(req.Name)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyUnitName):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unit name cannot be empty"})
		case errors.Is(err, ErrUnitExists):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unit name already in use"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create unit"})
		}
		return
	}
	c.JSON(http.StatusCreated, unit)
}

// RenameUnit renames a unit
// @Summary Rename a unit
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Unit ID"
// @Param request body UnitRequest true "New unit name"
// @Success 200 {object} models.Unit
// @Failure 404 {object} map[string]string "Unit not found"
// @Security BearerAuth
// @Router /admin/units/{id} [put]
func (h *Handler) RenameUnit(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid unit ID"})
		return
	}

	var req UnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	unit, err := h.directory.RenameUnit(uint(id), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnitNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Unit not found"})
		case errors.Is(err, ErrEmptyUnitName):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unit name cannot be empty"})
		case errors.Is(err, ErrUnitExists):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unit name already in use"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rename unit"})
		}
		return
	}
	c.JSON(http.StatusOK, unit)
}

// DeleteUnit removes a unit without touching its members
// @Summary Delete a unit
// @Tags admin
// @Produce json
// @Param id path int true "Unit ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Unit not found"
// @Security BearerAuth
// @Router /admin/units/{id} [delete]
func (h *Handler) DeleteUnit(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid unit ID"})
		return
	}

	if err := h.directory.DeleteUnit(uint(id)); err != nil {
		if errors.Is(err, ErrUnitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unit not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete unit"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Unit deleted"})
}

// ListUnitMembers returns the users assigned to a unit
// @Summary List unit members
// @Tags admin
// @Produce json
// @Param id path int true "Unit ID"
// @Success 200 {array} models.User
// @Failure 404 {object} map[string]string "Unit not found"
// @Security BearerAuth
// @Router /admin/units/{id}/members [get]
func (h *Handler) ListUnitMembers(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid unit ID"})
		return
	}

	var unit models.Unit
	if err := h.db.First(&unit, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unit not found"})
		return
	}

	members, err := h.directory.ListMembers(unit.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch members"})
		return
	}
	c.JSON(http.StatusOK, members)
}

// Import runs a bulk roster import
// @Summary Bulk import roster rows
// @Description Import users from 13-column comma- or tab-separated text; bad rows are reported and skipped
// @Tags admin
// @Accept json
// @Produce json
// @Param request body ImportRequest true "Delimited roster data"
// @Success 200 {object} ImportResult
// @Failure 400 {object} map[string]string "Unparseable data"
// @Security BearerAuth
// @Router /admin/import [post]
func (h *Handler) Import(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.importer.Import(req.Data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// RegisterAdminRoutes registers roster routes on the admin group
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/units", h.ListUnits)
	rg.POST("/units", h.CreateUnit)
	rg.PUT("/units/:id", h.RenameUnit)
	rg.DELETE("/units/:id", h.DeleteUnit)
	rg.GET("/units/:id/members", h.ListUnitMembers)
	rg.POST("/import", h.Import)
}
