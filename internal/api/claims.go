package api

import "github.com/golang-jwt/jwt/v5"

// Claims is the payload of the bearer tokens issued by the election
// service. Clients read it without verification only to learn the expiry
// and the display name; the service is the one that verifies.
type Claims struct {
	jwt.RegisteredClaims
	StudentID string `json:"studentId"`
	Name      string `json:"name,omitempty"`
}
