package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid chequea que el dominio del mail resuelva por DNS
// (MX o, en su defecto, A/AAAA). Se usa en el alta de usuarios del
// staff para frenar typos antes de guardar.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	dominio := email[at+1:]

	if mx, err := net.LookupMX(dominio); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(dominio); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
