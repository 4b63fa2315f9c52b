package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yassineraddaoui/Restaurant-Review/internal/store"
)

// Authenticator turns an opaque bearer credential into a user profile. Token
// issuance is kept alongside for tooling and tests.
type Authenticator interface {
	GenerateToken(user store.User, exp time.Duration) (string, error)
	ValidateToken(token string) (store.User, error)
}

type JWTAuthenticator struct {
	secret string
	aud    string
	iss    string
}

func NewJWTAuthenticator(secret, aud, iss string) *JWTAuthenticator {
	return &JWTAuthenticator{secret: secret, aud: aud, iss: iss}
}

func (a *JWTAuthenticator) GenerateToken(user store.User, exp time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":                user.ID,
		"preferred_username": user.Username,
		"given_name":         user.GivenName,
		"family_name":        user.FamilyName,
		"exp":                now.Add(exp).Unix(),
		"iat":                now.Unix(),
		"nbf":                now.Unix(),
		"iss":                a.iss,
		"aud":                a.aud,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(a.secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (a *JWTAuthenticator) ValidateToken(tokenString string) (store.User, error) {
	token, err := jwt.Parse(tokenString,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(a.secret), nil
		},
		jwt.WithExpirationRequired(),
		jwt.WithAudience(a.aud),
		jwt.WithIssuer(a.iss),
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil {
		return store.User{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return store.User{}, fmt.Errorf("invalid token")
	}

	user := store.User{
		ID:         claimString(claims, "sub"),
		Username:   claimString(claims, "preferred_username"),
		GivenName:  claimString(claims, "given_name"),
		FamilyName: claimString(claims, "family_name"),
	}
	if user.ID == "" {
		return store.User{}, fmt.Errorf("token has no subject")
	}
	return user, nil
}

func claimString(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}
