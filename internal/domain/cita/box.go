package cita

// Boxes físicos del centro, numerados 1..8
const (
	MinBox = 1
	MaxBox = 8
)

func BoxValido(box int) bool {
	return box >= MinBox && box <= MaxBox
}
