package validators

import "strings"

// NormalizeDNI quita puntos y espacios: "12.345.678" -> "12345678"
func NormalizeDNI(dni string) string {
	dni = strings.TrimSpace(dni)
	dni = strings.ReplaceAll(dni, ".", "")
	dni = strings.ReplaceAll(dni, " ", "")
	return dni
}

// IsValidDNI acepta 7 u 8 dígitos numéricos.
func IsValidDNI(dni string) bool {
	dni = NormalizeDNI(dni)
	if len(dni) < 7 || len(dni) > 8 {
		return false
	}
	for _, r := range dni {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
