package cita

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/VitalSpaAR/spa-agenda/internal/domain/cita"
	"github.com/VitalSpaAR/spa-agenda/internal/httperr"
	"github.com/VitalSpaAR/spa-agenda/internal/models"
)

// fakeRepo implementa domain.Repository en memoria para los tests
// de los use cases. Replica el contrato del repositorio real:
// el chequeo de solapamiento usa intervalos semiabiertos y las
// citas canceladas no bloquean el box.
type fakeRepo struct {
	tratamientos    map[uint]*models.Tratamiento
	subtratamientos map[uint]*models.Subtratamiento
	clientes        map[string]*models.Cliente
	ventanas        []models.Disponibilidad
	citas           []*models.Cita

	nextClienteID uint
	nextCitaID    uint

	// updates reales sobre clientes existentes (para verificar que
	// un re-resolve sin cambios no escribe nada)
	clienteUpdates int

	// errores forzados para simular fallas del backend
	errConflicto error
	errVentanas  error

	// simula la carrera check-then-act: el chequeo de lectura ve el
	// slot libre, pero el re-chequeo dentro de la escritura lo
	// encuentra ocupado
	carreraAlEscribir bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		tratamientos:    make(map[uint]*models.Tratamiento),
		subtratamientos: make(map[uint]*models.Subtratamiento),
		clientes:        make(map[string]*models.Cliente),
	}
}

func (f *fakeRepo) GetTratamiento(ctx context.Context, id uint) (*models.Tratamiento, error) {
	if t, ok := f.tratamientos[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetSubtratamiento(ctx context.Context, tratamientoID uint, id uint) (*models.Subtratamiento, error) {
	st, ok := f.subtratamientos[id]
	if !ok || st.TratamientoID != tratamientoID {
		return nil, gorm.ErrRecordNotFound
	}
	return st, nil
}

// ResolveCliente replica el contrato del repositorio real: sólo
// escribe cuando nombre o teléfono difieren del snapshot guardado.
func (f *fakeRepo) ResolveCliente(ctx context.Context, dni, nombreCompleto, telefono string) (*models.Cliente, error) {
	if c, ok := f.clientes[dni]; ok {
		if c.NombreCompleto != nombreCompleto || c.Telefono != telefono {
			c.NombreCompleto = nombreCompleto
			c.Telefono = telefono
			f.clienteUpdates++
		}
		return c, nil
	}

	f.nextClienteID++
	c := &models.Cliente{
		ID:             f.nextClienteID,
		DNI:            dni,
		NombreCompleto: nombreCompleto,
		Telefono:       telefono,
	}
	f.clientes[dni] = c
	return c, nil
}

func (f *fakeRepo) VentanasParaTratamiento(ctx context.Context, tratamientoID uint) ([]models.Disponibilidad, error) {
	if f.errVentanas != nil {
		return nil, f.errVentanas
	}

	var out []models.Disponibilidad
	for _, v := range f.ventanas {
		if v.TratamientoID == tratamientoID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeRepo) CountCitasDeTratamiento(ctx context.Context, tratamientoID uint, inicio, fin time.Time, excluirCitaID *uint) (int64, error) {
	var n int64
	for _, cp := range f.citas {
		if cp.TratamientoID != tratamientoID || cp.Estado == string(domain.EstadoCancelado) {
			continue
		}
		if excluirCitaID != nil && cp.ID == *excluirCitaID {
			continue
		}
		if domain.Solapan(inicio, fin, cp.HoraInicio, cp.HoraFin) {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) HasConflictoBox(ctx context.Context, box int, inicio, fin time.Time, excluirCitaID *uint) (bool, error) {
	if f.errConflicto != nil {
		return false, f.errConflicto
	}
	if f.carreraAlEscribir {
		return false, nil
	}
	return f.hayConflicto(box, inicio, fin, excluirCitaID), nil
}

func (f *fakeRepo) hayConflicto(box int, inicio, fin time.Time, excluirCitaID *uint) bool {
	for _, cp := range f.citas {
		if cp.Box != box || cp.Estado == string(domain.EstadoCancelado) {
			continue
		}
		if excluirCitaID != nil && cp.ID == *excluirCitaID {
			continue
		}
		if domain.Solapan(inicio, fin, cp.HoraInicio, cp.HoraFin) {
			return true
		}
	}
	return false
}

// InTx replica la semántica transaccional del repositorio real:
// si fn falla, clientes y citas vuelven al estado previo.
func (f *fakeRepo) InTx(ctx context.Context, fn func(domain.Repository) error) error {
	clientes := make(map[string]*models.Cliente, len(f.clientes))
	for dni, c := range f.clientes {
		copia := *c
		clientes[dni] = &copia
	}
	citas := make([]*models.Cita, len(f.citas))
	copy(citas, f.citas)
	nextCliente, nextCita, updates := f.nextClienteID, f.nextCitaID, f.clienteUpdates

	if err := fn(f); err != nil {
		f.clientes = clientes
		f.citas = citas
		f.nextClienteID = nextCliente
		f.nextCitaID = nextCita
		f.clienteUpdates = updates
		return err
	}
	return nil
}

func (f *fakeRepo) CrearCitaConChequeo(ctx context.Context, cp *models.Cita) error {
	if f.errConflicto != nil {
		return f.errConflicto
	}
	if f.hayConflicto(cp.Box, cp.HoraInicio, cp.HoraFin, nil) {
		return httperr.ErrBusiness("box_ocupado")
	}

	f.nextCitaID++
	cp.ID = f.nextCitaID
	f.citas = append(f.citas, cp)
	return nil
}

func (f *fakeRepo) ActualizarCitaConChequeo(ctx context.Context, cp *models.Cita) error {
	if f.errConflicto != nil {
		return f.errConflicto
	}

	excluir := cp.ID
	if f.hayConflicto(cp.Box, cp.HoraInicio, cp.HoraFin, &excluir) {
		return httperr.ErrBusiness("box_ocupado")
	}

	for i := range f.citas {
		if f.citas[i].ID == cp.ID {
			f.citas[i] = cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetCita(ctx context.Context, id uint) (*models.Cita, error) {
	for _, cp := range f.citas {
		if cp.ID == id {
			return cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) UpdateCita(ctx context.Context, cp *models.Cita) error {
	for i := range f.citas {
		if f.citas[i].ID == cp.ID {
			f.citas[i] = cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListCitasPorRango(ctx context.Context, inicio, fin time.Time) ([]models.Cita, error) {
	var out []models.Cita
	for _, cp := range f.citas {
		if domain.Solapan(inicio, fin, cp.HoraInicio, cp.HoraFin) {
			out = append(out, *cp)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListCitasDeBox(ctx context.Context, box int, inicio, fin time.Time) ([]models.Cita, error) {
	var out []models.Cita
	for _, cp := range f.citas {
		if cp.Box != box || cp.Estado == string(domain.EstadoCancelado) {
			continue
		}
		if domain.Solapan(inicio, fin, cp.HoraInicio, cp.HoraFin) {
			out = append(out, *cp)
		}
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)
