package cita

import (
	"hash/fnv"
	"strings"
)

// Paleta fija para el calendario; el color de una cita
// sale del hash del nombre del tratamiento.
var paleta = []string{
	"#4F46E5",
	"#0891B2",
	"#059669",
	"#D97706",
	"#DC2626",
	"#7C3AED",
	"#DB2777",
	"#475569",
}

func ColorParaTratamiento(nombre string) string {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(nombre))))
	return paleta[h.Sum32()%uint32(len(paleta))]
}
