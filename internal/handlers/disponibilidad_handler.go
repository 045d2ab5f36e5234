package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/VitalSpaAR/spa-agenda/internal/httperr"
	"github.com/VitalSpaAR/spa-agenda/internal/httpresp"
	"github.com/VitalSpaAR/spa-agenda/internal/models"
)

// ======================================================
// HANDLER — ventanas de disponibilidad por tratamiento
// ======================================================

type DisponibilidadHandler struct {
	db *gorm.DB
}

func NewDisponibilidadHandler(db *gorm.DB) *DisponibilidadHandler {
	return &DisponibilidadHandler{db: db}
}

type DisponibilidadRequest struct {
	FechaDesde     string `json:"fecha_desde" binding:"required"` // YYYY-MM-DD
	FechaHasta     string `json:"fecha_hasta" binding:"required"`
	HoraDesde      string `json:"hora_desde" binding:"required"` // HH:mm
	HoraHasta      string `json:"hora_hasta" binding:"required"`
	Boxes          string `json:"boxes"`
	CupoSimultaneo int    `json:"cupo_simultaneo"`
	Activo         *bool  `json:"activo"`
}

func (r *DisponibilidadRequest) parse() (time.Time, time.Time, error) {
	desde, err := time.Parse("2006-01-02", r.FechaDesde)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	hasta, err := time.Parse("2006-01-02", r.FechaHasta)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return desde, hasta, nil
}

func validHoraRango(desde, hasta string) bool {
	d, err1 := time.Parse("15:04", desde)
	h, err2 := time.Parse("15:04", hasta)
	return err1 == nil && err2 == nil && d.Before(h)
}

// ======================================================
// LIST
// ======================================================

func (h *DisponibilidadHandler) ListByTratamiento(c *gin.Context) {
	tratamientoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "tratamiento_invalido", "Tratamiento inválido.")
		return
	}

	var ventanas []models.Disponibilidad
	if err := h.db.
		Where("tratamiento_id = ?", tratamientoID).
		Order("fecha_desde ASC").
		Find(&ventanas).Error; err != nil {

		httperr.Internal(c, "disponibilidad_list_failed", "Error al listar disponibilidades.")
		return
	}

	httpresp.List(c, ventanas)
}

// ======================================================
// CREATE
// ======================================================

func (h *DisponibilidadHandler) Create(c *gin.Context) {
	tratamientoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "tratamiento_invalido", "Tratamiento inválido.")
		return
	}

	var req DisponibilidadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	desde, hasta, err := req.parse()
	if err != nil || hasta.Before(desde) {
		httperr.BadRequest(c, "fecha_invalida", "Rango de fechas inválido.")
		return
	}

	if !validHoraRango(req.HoraDesde, req.HoraHasta) {
		httperr.BadRequest(c, "hora_invalida", "Rango horario inválido.")
		return
	}

	var tratamiento models.Tratamiento
	if err := h.db.First(&tratamiento, tratamientoID).Error; err != nil {
		httperr.NotFound(c, "tratamiento_no_encontrado", "Tratamiento no encontrado.")
		return
	}

	cupo := req.CupoSimultaneo
	if cupo <= 0 {
		cupo = 1
	}

	activo := true
	if req.Activo != nil {
		activo = *req.Activo
	}

	ventana := models.Disponibilidad{
		TratamientoID:  uint(tratamientoID),
		FechaDesde:     desde,
		FechaHasta:     hasta,
		HoraDesde:      req.HoraDesde,
		HoraHasta:      req.HoraHasta,
		Boxes:          req.Boxes,
		CupoSimultaneo: cupo,
		Activo:         activo,
	}

	if err := h.db.Create(&ventana).Error; err != nil {
		httperr.Internal(c, "disponibilidad_create_failed", "Error al crear la disponibilidad.")
		return
	}

	httpresp.Created(c, ventana)
}

// ======================================================
// UPDATE
// ======================================================

func (h *DisponibilidadHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "disponibilidad_invalida", "Disponibilidad inválida.")
		return
	}

	var ventana models.Disponibilidad
	if err := h.db.First(&ventana, id).Error; err != nil {
		httperr.NotFound(c, "disponibilidad_no_encontrada", "Disponibilidad no encontrada.")
		return
	}

	var req DisponibilidadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	desde, hasta, err := req.parse()
	if err != nil || hasta.Before(desde) {
		httperr.BadRequest(c, "fecha_invalida", "Rango de fechas inválido.")
		return
	}

	if !validHoraRango(req.HoraDesde, req.HoraHasta) {
		httperr.BadRequest(c, "hora_invalida", "Rango horario inválido.")
		return
	}

	ventana.FechaDesde = desde
	ventana.FechaHasta = hasta
	ventana.HoraDesde = req.HoraDesde
	ventana.HoraHasta = req.HoraHasta
	ventana.Boxes = req.Boxes

	if req.CupoSimultaneo > 0 {
		ventana.CupoSimultaneo = req.CupoSimultaneo
	}
	if req.Activo != nil {
		ventana.Activo = *req.Activo
	}

	if err := h.db.Save(&ventana).Error; err != nil {
		httperr.Internal(c, "disponibilidad_update_failed", "Error al actualizar la disponibilidad.")
		return
	}

	httpresp.OK(c, ventana)
}

// ======================================================
// DELETE
// ======================================================

func (h *DisponibilidadHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "disponibilidad_invalida", "Disponibilidad inválida.")
		return
	}

	res := h.db.Delete(&models.Disponibilidad{}, id)
	if res.Error != nil {
		httperr.Internal(c, "disponibilidad_delete_failed", "Error al eliminar la disponibilidad.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "disponibilidad_no_encontrada", "Disponibilidad no encontrada.")
		return
	}

	c.Status(204)
}
