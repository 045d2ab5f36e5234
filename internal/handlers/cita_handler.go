package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/VitalSpaAR/spa-agenda/internal/domain/cita"
	"github.com/VitalSpaAR/spa-agenda/internal/dto"
	"github.com/VitalSpaAR/spa-agenda/internal/httperr"
	"github.com/VitalSpaAR/spa-agenda/internal/middleware"
	"github.com/VitalSpaAR/spa-agenda/internal/payments"
	"github.com/VitalSpaAR/spa-agenda/internal/timezone"
	ucCita "github.com/VitalSpaAR/spa-agenda/internal/usecase/cita"
)

// ======================================================
// HANDLER
// ======================================================

type CitaHandler struct {
	crearUC         *ucCita.CrearCita
	crearMultipleUC *ucCita.CrearCitaMultiple
	reprogramarUC   *ucCita.ReprogramarCita
	confirmarUC     *ucCita.ConfirmarCita
	completarUC     *ucCita.CompletarCita
	cancelarUC      *ucCita.CancelarCita
	porFechaUC      *ucCita.ListarCitasPorFecha
	porMesUC        *ucCita.ListarCitasPorMes
	dispUC          *ucCita.VerificarDisponibilidad
	slotsUC         *ucCita.SlotsDisponibles

	repo   domain.Repository
	linker *payments.SenaLinker
	tz     string
}

func NewCitaHandler(
	crearUC *ucCita.CrearCita,
	crearMultipleUC *ucCita.CrearCitaMultiple,
	reprogramarUC *ucCita.ReprogramarCita,
	confirmarUC *ucCita.ConfirmarCita,
	completarUC *ucCita.CompletarCita,
	cancelarUC *ucCita.CancelarCita,
	porFechaUC *ucCita.ListarCitasPorFecha,
	porMesUC *ucCita.ListarCitasPorMes,
	dispUC *ucCita.VerificarDisponibilidad,
	slotsUC *ucCita.SlotsDisponibles,
	repo domain.Repository,
	linker *payments.SenaLinker,
	tz string,
) *CitaHandler {
	return &CitaHandler{
		crearUC:         crearUC,
		crearMultipleUC: crearMultipleUC,
		reprogramarUC:   reprogramarUC,
		confirmarUC:     confirmarUC,
		completarUC:     completarUC,
		cancelarUC:      cancelarUC,
		porFechaUC:      porFechaUC,
		porMesUC:        porMesUC,
		dispUC:          dispUC,
		slotsUC:         slotsUC,
		repo:            repo,
		linker:          linker,
		tz:              tz,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateCitaRequest struct {
	DNI              string  `json:"dni" binding:"required"`
	NombreCompleto   string  `json:"nombre_completo" binding:"required"`
	Telefono         string  `json:"telefono"`
	TratamientoID    uint    `json:"tratamiento_id" binding:"required"`
	SubtratamientoID uint    `json:"subtratamiento_id"`
	Fecha            string  `json:"fecha" binding:"required"` // YYYY-MM-DD
	Hora             string  `json:"hora" binding:"required"`  // HH:mm
	Box              int     `json:"box" binding:"required"`
	Precio           float64 `json:"precio"`
	Sena             float64 `json:"sena"`
	Notas            string  `json:"notas"`
}

type ParticipanteRequest struct {
	DNI            string  `json:"dni" binding:"required"`
	NombreCompleto string  `json:"nombre_completo" binding:"required"`
	Telefono       string  `json:"telefono"`
	Precio         float64 `json:"precio"`
	Sena           float64 `json:"sena"`
}

type CreateCitaMultipleRequest struct {
	TratamientoID    uint                  `json:"tratamiento_id" binding:"required"`
	SubtratamientoID uint                  `json:"subtratamiento_id"`
	Fecha            string                `json:"fecha" binding:"required"`
	Hora             string                `json:"hora" binding:"required"`
	Box              int                   `json:"box" binding:"required"`
	Notas            string                `json:"notas"`
	Participantes    []ParticipanteRequest `json:"participantes" binding:"required,min=1,dive"`
}

type ReprogramarCitaRequest struct {
	Fecha            *string  `json:"fecha,omitempty"`
	Hora             *string  `json:"hora,omitempty"`
	Box              *int     `json:"box,omitempty"`
	SubtratamientoID *uint    `json:"subtratamiento_id,omitempty"`
	Precio           *float64 `json:"precio,omitempty"`
	Sena             *float64 `json:"sena,omitempty"`
	Notas            *string  `json:"notas,omitempty"`
}

// ======================================================
// ERROR MAPPING
// ======================================================

func writeCitaError(c *gin.Context, err error) {
	if code, ok := httperr.IsAnyBusiness(err); ok {
		switch code {
		case "box_ocupado", "cupo_completo":
			httperr.Conflict(c, code, "El box ya está ocupado en ese horario.")
		case "cita_no_encontrada", "tratamiento_no_encontrado", "subtratamiento_no_encontrado":
			httperr.NotFound(c, code, "Recurso no encontrado.")
		default:
			httperr.BadRequest(c, code, "Datos inválidos.")
		}
		return
	}

	if httperr.IsConflict(err) {
		httperr.Conflict(c, "slot_en_conflicto", "El box ya está ocupado en ese horario.")
		return
	}

	httperr.Internal(c, "error_interno", "Error al procesar la cita.")
}

// ======================================================
// CREATE
// ======================================================

func (h *CitaHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateCitaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	cita, err := h.crearUC.Execute(c.Request.Context(), ucCita.CrearCitaInput{
		DNI:              req.DNI,
		NombreCompleto:   req.NombreCompleto,
		Telefono:         req.Telefono,
		TratamientoID:    req.TratamientoID,
		SubtratamientoID: req.SubtratamientoID,
		Fecha:            req.Fecha,
		Hora:             req.Hora,
		Box:              req.Box,
		Precio:           req.Precio,
		Sena:             req.Sena,
		Notas:            req.Notas,
		UserID:           userID,
	})
	if err != nil {
		writeCitaError(c, err)
		return
	}

	c.JSON(http.StatusCreated, cita)
}

// ======================================================
// CREATE MULTIPLE
// ======================================================

func (h *CitaHandler) CreateMultiple(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateCitaMultipleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	participantes := make([]ucCita.ParticipanteInput, 0, len(req.Participantes))
	for _, p := range req.Participantes {
		participantes = append(participantes, ucCita.ParticipanteInput{
			DNI:            p.DNI,
			NombreCompleto: p.NombreCompleto,
			Telefono:       p.Telefono,
			Precio:         p.Precio,
			Sena:           p.Sena,
		})
	}

	cita, err := h.crearMultipleUC.Execute(c.Request.Context(), ucCita.CrearCitaMultipleInput{
		TratamientoID:    req.TratamientoID,
		SubtratamientoID: req.SubtratamientoID,
		Fecha:            req.Fecha,
		Hora:             req.Hora,
		Box:              req.Box,
		Notas:            req.Notas,
		Participantes:    participantes,
		UserID:           userID,
	})
	if err != nil {
		writeCitaError(c, err)
		return
	}

	c.JSON(http.StatusCreated, cita)
}

// ======================================================
// DISPONIBILIDAD (chequeo puntual de un slot)
// ======================================================

func (h *CitaHandler) Disponibilidad(c *gin.Context) {
	fecha := c.Query("fecha")
	inicio := c.Query("inicio")
	fin := c.Query("fin")
	boxStr := c.Query("box")

	if fecha == "" || inicio == "" || fin == "" || boxStr == "" {
		httperr.BadRequest(c, "missing_params", "fecha, inicio, fin y box son obligatorios.")
		return
	}

	box, err := strconv.Atoi(boxStr)
	if err != nil {
		httperr.BadRequest(c, "box_invalido", "Box inválido.")
		return
	}

	loc := timezone.Location(h.tz)

	horaInicio, err := time.ParseInLocation("2006-01-02 15:04", fecha+" "+inicio, loc)
	if err != nil {
		httperr.BadRequest(c, "fecha_u_hora_invalida", "Fecha u hora inválida.")
		return
	}

	horaFin, err := time.ParseInLocation("2006-01-02 15:04", fecha+" "+fin, loc)
	if err != nil {
		httperr.BadRequest(c, "fecha_u_hora_invalida", "Fecha u hora inválida.")
		return
	}

	in := domain.DisponibilidadInput{
		Box:    box,
		Inicio: horaInicio,
		Fin:    horaFin,
	}

	if v := c.Query("tratamiento_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "tratamiento_invalido", "Tratamiento inválido.")
			return
		}
		in.TratamientoID = uint(id)
	}

	if v := c.Query("excluir_cita_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "cita_invalida", "Cita inválida.")
			return
		}
		excluir := uint(id)
		in.ExcluirCitaID = &excluir
	}

	err = h.dispUC.Execute(c.Request.Context(), in)
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"disponible": true})
		return
	}

	if code, ok := httperr.IsAnyBusiness(err); ok {
		c.JSON(http.StatusOK, gin.H{"disponible": false, "motivo": code})
		return
	}

	// falla del backend: NUNCA se responde "disponible"
	httperr.Internal(c, "error_verificando_disponibilidad", "No se pudo verificar la disponibilidad.")
}

// ======================================================
// SLOTS LIBRES (grilla por box)
// ======================================================

func (h *CitaHandler) Slots(c *gin.Context) {
	fecha := c.Query("fecha")
	if fecha == "" {
		httperr.BadRequest(c, "missing_fecha", "Fecha obligatoria.")
		return
	}

	in := ucCita.SlotsDisponiblesInput{Fecha: fecha}

	if v := c.Query("tratamiento_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "tratamiento_invalido", "Tratamiento inválido.")
			return
		}
		in.TratamientoID = uint(id)
	}

	if v := c.Query("subtratamiento_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "subtratamiento_invalido", "Subtratamiento inválido.")
			return
		}
		in.SubtratamientoID = uint(id)
	}

	slots, err := h.slotsUC.Execute(c.Request.Context(), in)
	if err != nil {
		writeCitaError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"fecha": fecha, "slots": slots})
}

// ======================================================
// LIST
// ======================================================

func (h *CitaHandler) ListByDate(c *gin.Context) {
	fecha := c.Query("fecha")
	if fecha == "" {
		httperr.BadRequest(c, "missing_fecha", "Fecha obligatoria.")
		return
	}

	citas, err := h.porFechaUC.Execute(c.Request.Context(), fecha)
	if err != nil {
		writeCitaError(c, err)
		return
	}

	out := make([]dto.CitaListDTO, 0, len(citas))
	for i := range citas {
		out = append(out, dto.FromCita(&citas[i]))
	}

	c.JSON(http.StatusOK, out)
}

func (h *CitaHandler) ListByMonth(c *gin.Context) {
	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Año y mes son obligatorios.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		httperr.BadRequest(c, "anio_invalido", "Año inválido.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil {
		httperr.BadRequest(c, "mes_invalido", "Mes inválido.")
		return
	}

	citas, err := h.porMesUC.Execute(c.Request.Context(), year, month)
	if err != nil {
		writeCitaError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":  year,
		"month": month,
		"citas": citas,
	})
}

func (h *CitaHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "cita_invalida", "Cita inválida.")
		return
	}

	cita, err := h.repo.GetCita(c.Request.Context(), uint(id))
	if err != nil {
		httperr.NotFound(c, "cita_no_encontrada", "Cita no encontrada.")
		return
	}

	c.JSON(http.StatusOK, cita)
}

// ======================================================
// REPROGRAMAR / EDITAR
// ======================================================

func (h *CitaHandler) Reprogramar(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "cita_invalida", "Cita inválida.")
		return
	}

	var req ReprogramarCitaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	cita, err := h.reprogramarUC.Execute(c.Request.Context(), ucCita.ReprogramarCitaInput{
		CitaID:           uint(id),
		Fecha:            req.Fecha,
		Hora:             req.Hora,
		Box:              req.Box,
		SubtratamientoID: req.SubtratamientoID,
		Precio:           req.Precio,
		Sena:             req.Sena,
		Notas:            req.Notas,
		UserID:           userID,
	})
	if err != nil {
		writeCitaError(c, err)
		return
	}

	c.JSON(http.StatusOK, cita)
}

// ======================================================
// CAMBIOS DE ESTADO
// ======================================================

func (h *CitaHandler) Confirmar(c *gin.Context) {
	h.cambioDeEstado(c, func(ctx *gin.Context, userID, citaID uint) (any, error) {
		return h.confirmarUC.Execute(ctx.Request.Context(), userID, citaID)
	})
}

func (h *CitaHandler) Completar(c *gin.Context) {
	h.cambioDeEstado(c, func(ctx *gin.Context, userID, citaID uint) (any, error) {
		return h.completarUC.Execute(ctx.Request.Context(), userID, citaID)
	})
}

func (h *CitaHandler) Cancelar(c *gin.Context) {
	h.cambioDeEstado(c, func(ctx *gin.Context, userID, citaID uint) (any, error) {
		return h.cancelarUC.Execute(ctx.Request.Context(), userID, citaID)
	})
}

func (h *CitaHandler) cambioDeEstado(
	c *gin.Context,
	fn func(c *gin.Context, userID, citaID uint) (any, error),
) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "cita_invalida", "Cita inválida.")
		return
	}

	cita, err := fn(c, userID, uint(id))
	if err != nil {
		writeCitaError(c, err)
		return
	}

	c.JSON(http.StatusOK, cita)
}

// ======================================================
// LINK DE PAGO DE LA SEÑA (Mercado Pago)
// ======================================================

func (h *CitaHandler) SenaLink(c *gin.Context) {
	if !h.linker.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "pagos_no_configurados"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "cita_invalida", "Cita inválida.")
		return
	}

	cita, err := h.repo.GetCita(c.Request.Context(), uint(id))
	if err != nil {
		httperr.NotFound(c, "cita_no_encontrada", "Cita no encontrada.")
		return
	}

	link, err := h.linker.CrearLink(c.Request.Context(), cita)
	if err != nil {
		httperr.Internal(c, "failed_to_create_payment_link", "No se pudo generar el link de pago.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cita_id": cita.ID,
		"sena":    cita.Sena,
		"link":    link,
	})
}
