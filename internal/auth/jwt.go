package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Role string

const (
	RolePlayer Role = "player"
	// RoleSystem may act on any player's wallet, e.g. a game server granting rewards.
	RoleSystem Role = "system"
)

var ErrUnknownRole = errors.New("unknown role")

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case "", RolePlayer:
		return RolePlayer, nil
	case RoleSystem:
		return RoleSystem, nil
	}
	return "", fmt.Errorf("ParseRole: %q: %w", s, ErrUnknownRole)
}

type Claims struct {
	PlayerID uuid.UUID
	Role     Role
}

// CanAccess reports whether the holder may act on playerID's wallet.
func (c Claims) CanAccess(playerID uuid.UUID) bool {
	return c.Role == RoleSystem || c.PlayerID == playerID
}

type tokenClaims struct {
	jwt.RegisteredClaims
	PlayerID string `json:"player_id"`
	Role     string `json:"role"`
}

func GenerateToken(playerID uuid.UUID, role Role, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   playerID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		PlayerID: playerID.String(),
		Role:     string(role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("GenerateToken: %w", err)
	}
	return signed, nil
}

func ValidateToken(tokenString string, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("ValidateToken: %w", err)
	}

	tc, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("ValidateToken: invalid token claims")
	}

	playerID, err := uuid.Parse(tc.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("ValidateToken: invalid player_id in token: %w", err)
	}
	role, err := ParseRole(tc.Role)
	if err != nil {
		return nil, fmt.Errorf("ValidateToken: %w", err)
	}

	return &Claims{
		PlayerID: playerID,
		Role:     role,
	}, nil
}
