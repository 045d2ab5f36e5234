package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/VitalSpaAR/spa-agenda/internal/httpresp"
	"github.com/VitalSpaAR/spa-agenda/internal/models"
)

type ClienteHandler struct {
	db *gorm.DB
}

func NewClienteHandler(db *gorm.DB) *ClienteHandler {
	return &ClienteHandler{db: db}
}

// ======================================================
// LIST CLIENTES (búsqueda por dni / nombre / teléfono)
// ======================================================
func (h *ClienteHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Session(&gorm.Session{})

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"dni LIKE ? OR LOWER(nombre_completo) LIKE ? OR telefono LIKE ?",
			like, like, like,
		)
	}

	var clientes []models.Cliente
	if err := q.
		Order("created_at DESC").
		Find(&clientes).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed_to_list_clientes",
		})
		return
	}

	httpresp.List(c, clientes)
}

func (h *ClienteHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var cliente models.Cliente
	if err := h.db.First(&cliente, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "cliente_no_encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_cliente"})
		return
	}

	httpresp.OK(c, cliente)
}
