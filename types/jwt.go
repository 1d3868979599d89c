package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the JWT claims issued to contractors
type Claims struct {
	ContractorID uint `json:"contractor_id"`
	jwt.RegisteredClaims
}
