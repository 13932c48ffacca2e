package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// GetCategories handles GET /catalog/categories
// @Summary List event categories
// @Tags Catalog
// @Produce json
// @Success 200 {object} gin.H
// @Router /api/v1/catalog/categories [get]
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.repo.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

// GetUniversities handles GET /catalog/universities
func (h *Handler) GetUniversities(c *gin.Context) {
	universities, err := h.repo.ListUniversities(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch universities"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": universities})
}

// GetFaculties handles GET /catalog/faculties?university_id=
func (h *Handler) GetFaculties(c *gin.Context) {
	var universityID uint
	if idStr := c.Query("university_id"); idStr != "" {
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid university_id"})
			return
		}
		universityID = uint(id)
	}

	faculties, err := h.repo.ListFaculties(c.Request.Context(), universityID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch faculties"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": faculties})
}

// CreateCategory handles POST /admin/catalog/categories
// @Summary Add an event category
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} gin.H
// @Router /api/v1/admin/catalog/categories [post]
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := Category{Name: req.Name}
	if err := h.repo.CreateCategory(c.Request.Context(), &category); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": category})
}

// CreateUniversity handles POST /admin/catalog/universities
func (h *Handler) CreateUniversity(c *gin.Context) {
	var req CreateUniversityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	university := University{Name: req.Name, City: req.City}
	if err := h.repo.CreateUniversity(c.Request.Context(), &university); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create university"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": university})
}

// CreateFaculty handles POST /admin/catalog/faculties
func (h *Handler) CreateFaculty(c *gin.Context) {
	var req CreateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	faculty := Faculty{UniversityID: req.UniversityID, Name: req.Name}
	if err := h.repo.CreateFaculty(c.Request.Context(), &faculty); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "University not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create faculty"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": faculty})
}
