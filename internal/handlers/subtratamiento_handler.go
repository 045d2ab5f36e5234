package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/VitalSpaAR/spa-agenda/internal/httperr"
	"github.com/VitalSpaAR/spa-agenda/internal/models"
)

type SubtratamientoHandler struct {
	db *gorm.DB
}

func NewSubtratamientoHandler(db *gorm.DB) *SubtratamientoHandler {
	return &SubtratamientoHandler{db: db}
}

// --------- Requests ---------

type CreateSubtratamientoRequest struct {
	Nombre      string  `json:"nombre" binding:"required"`
	DuracionMin int     `json:"duracion_min" binding:"required,min=1"`
	Precio      float64 `json:"precio" binding:"required"`
}

type UpdateSubtratamientoRequest struct {
	Nombre      *string  `json:"nombre,omitempty"`
	DuracionMin *int     `json:"duracion_min,omitempty"`
	Precio      *float64 `json:"precio,omitempty"`
	Activo      *bool    `json:"activo,omitempty"`
}

// --------- Handlers ---------

func (h *SubtratamientoHandler) ListByTratamiento(c *gin.Context) {
	tratamientoID := c.Param("id")

	var subtratamientos []models.Subtratamiento
	if err := h.db.
		Where("tratamiento_id = ?", tratamientoID).
		Order("id ASC").
		Find(&subtratamientos).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_subtratamientos"})
		return
	}

	c.JSON(http.StatusOK, subtratamientos)
}

func (h *SubtratamientoHandler) Create(c *gin.Context) {
	tratamientoID := c.Param("id")

	var tratamiento models.Tratamiento
	if err := h.db.First(&tratamiento, "id = ?", tratamientoID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tratamiento_no_encontrado"})
		return
	}

	var req CreateSubtratamientoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	st := models.Subtratamiento{
		TratamientoID: tratamiento.ID,
		Nombre:        strings.TrimSpace(req.Nombre),
		DuracionMin:   req.DuracionMin,
		Precio:        req.Precio,
		Activo:        true,
	}

	if err := h.db.Create(&st).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{
				"error":   "subtratamiento_duplicado",
				"details": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_subtratamiento"})
		return
	}

	c.JSON(http.StatusCreated, st)
}

func (h *SubtratamientoHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var st models.Subtratamiento
	if err := h.db.First(&st, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "subtratamiento_no_encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_subtratamiento"})
		return
	}

	var req UpdateSubtratamientoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Nombre != nil {
		st.Nombre = strings.TrimSpace(*req.Nombre)
	}
	if req.DuracionMin != nil {
		st.DuracionMin = *req.DuracionMin
	}
	if req.Precio != nil {
		st.Precio = *req.Precio
	}
	if req.Activo != nil {
		st.Activo = *req.Activo
	}

	if err := h.db.Save(&st).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{
				"error":   "subtratamiento_duplicado",
				"details": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_subtratamiento"})
		return
	}

	c.JSON(http.StatusOK, st)
}

func (h *SubtratamientoHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	res := h.db.Delete(&models.Subtratamiento{}, "id = ?", id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_subtratamiento"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "subtratamiento_no_encontrado"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
