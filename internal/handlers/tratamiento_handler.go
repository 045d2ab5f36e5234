package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/VitalSpaAR/spa-agenda/internal/cache"
	"github.com/VitalSpaAR/spa-agenda/internal/httperr"
	"github.com/VitalSpaAR/spa-agenda/internal/models"
	"github.com/VitalSpaAR/spa-agenda/internal/storage"
)

const catalogoKey = "tratamientos:catalogo"

// ======================================================
// HANDLER
// ======================================================

type TratamientoHandler struct {
	db    *gorm.DB
	cache *cache.Cache
	fotos *storage.FotoStore
}

func NewTratamientoHandler(db *gorm.DB, ch *cache.Cache, fotos *storage.FotoStore) *TratamientoHandler {
	return &TratamientoHandler{db: db, cache: ch, fotos: fotos}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateTratamientoRequest struct {
	Nombre      string `json:"nombre" binding:"required"`
	Descripcion string `json:"descripcion"`
	FotoURL     string `json:"foto_url"`
}

type UpdateTratamientoRequest struct {
	Nombre      *string `json:"nombre,omitempty"`
	Descripcion *string `json:"descripcion,omitempty"`
	FotoURL     *string `json:"foto_url,omitempty"`
}

// ======================================================
// LIST (con cache de catálogo)
// ======================================================

func (h *TratamientoHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	// sólo el listado completo pasa por cache
	if query == "" {
		var cached []models.Tratamiento
		if h.cache.Get(c.Request.Context(), catalogoKey, &cached) {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	q := h.db.Preload("Subtratamientos")

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(nombre) LIKE ? OR LOWER(descripcion) LIKE ?", like, like)
	}

	var tratamientos []models.Tratamiento
	if err := q.Order("id ASC").Find(&tratamientos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed_to_list_tratamientos",
			"details": err.Error(),
		})
		return
	}

	if query == "" {
		h.cache.Set(c.Request.Context(), catalogoKey, tratamientos)
	}

	c.JSON(http.StatusOK, tratamientos)
}

// ======================================================
// CREATE — 400 sin nombre, 409 nombre duplicado
// ======================================================

func (h *TratamientoHandler) Create(c *gin.Context) {
	var req CreateTratamientoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nombre_requerido"})
		return
	}

	tratamiento := models.Tratamiento{
		Nombre:      strings.TrimSpace(req.Nombre),
		Descripcion: req.Descripcion,
		FotoURL:     req.FotoURL,
	}

	if err := h.db.Create(&tratamiento).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{
				"error":   "tratamiento_duplicado",
				"details": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed_to_create_tratamiento",
			"details": err.Error(),
		})
		return
	}

	h.cache.Invalidate(c.Request.Context(), catalogoKey)

	c.JSON(http.StatusCreated, tratamiento)
}

// ======================================================
// UPDATE
// ======================================================

func (h *TratamientoHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var tratamiento models.Tratamiento
	if err := h.db.First(&tratamiento, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "tratamiento_no_encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_tratamiento"})
		return
	}

	var req UpdateTratamientoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Nombre != nil {
		tratamiento.Nombre = strings.TrimSpace(*req.Nombre)
	}
	if req.Descripcion != nil {
		tratamiento.Descripcion = *req.Descripcion
	}
	if req.FotoURL != nil {
		tratamiento.FotoURL = *req.FotoURL
	}

	if err := h.db.Save(&tratamiento).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{
				"error":   "tratamiento_duplicado",
				"details": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_tratamiento"})
		return
	}

	h.cache.Invalidate(c.Request.Context(), catalogoKey)

	c.JSON(http.StatusOK, tratamiento)
}

// ======================================================
// DELETE
// ======================================================

func (h *TratamientoHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	res := h.db.Delete(&models.Tratamiento{}, "id = ?", id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_tratamiento"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "tratamiento_no_encontrado"})
		return
	}

	h.cache.Invalidate(c.Request.Context(), catalogoKey)

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ======================================================
// FOTO — multipart, reescala + webp + S3
// ======================================================

func (h *TratamientoHandler) SubirFoto(c *gin.Context) {
	id := c.Param("id")

	if !h.fotos.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "foto_storage_no_configurado"})
		return
	}

	var tratamiento models.Tratamiento
	if err := h.db.First(&tratamiento, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tratamiento_no_encontrado"})
		return
	}

	file, err := c.FormFile("foto")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "foto_requerida"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "foto_invalida"})
		return
	}
	defer src.Close()

	url, err := h.fotos.SubirFoto(c.Request.Context(), tratamiento.ID, src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed_to_upload_foto",
			"details": err.Error(),
		})
		return
	}

	tratamiento.FotoURL = url
	if err := h.db.Save(&tratamiento).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_tratamiento"})
		return
	}

	h.cache.Invalidate(c.Request.Context(), catalogoKey)

	c.JSON(http.StatusOK, tratamiento)
}
