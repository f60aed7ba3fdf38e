// internal/rendezvous/ticket.go
// The shared-secret ticket scheme: an HS256 JWT carrying pid and an
// expiry. ValidateTicket is exported for the external rendezvous transport;
// the admission controller does not check tickets.

package rendezvous

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TicketClaims is the payload carried by a rendezvous ticket
type TicketClaims struct {
	PID uint32 `json:"pid"`
	jwt.RegisteredClaims
}

// IssueTicket signs a new ticket for pid, valid for lifetime
func IssueTicket(pid uint32, secret string, lifetime time.Duration) (string, error) {
	claims := TicketClaims{
		PID: pid,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(lifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateTicket verifies signature and expiry and returns the carried pid
func ValidateTicket(ticket, secret string) (uint32, error) {
	token, err := jwt.ParseWithClaims(ticket, &TicketClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(*TicketClaims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("invalid ticket")
	}
	return claims.PID, nil
}
