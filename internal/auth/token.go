package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the verified payload of an access token.
type Claims struct {
	UserID int64
	Role   string
}

// TokenManager issues and verifies signed bearer tokens. The secret and
// default lifetime are fixed at construction and never change for the
// process lifetime.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a manager with the provided secret and default
// token lifetime.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the user with the default lifetime.
func (t *TokenManager) Issue(userID int64, role string) (string, error) {
	return t.IssueWithTTL(userID, role, t.ttl)
}

// IssueWithTTL signs a token with an explicit lifetime.
func (t *TokenManager) IssueWithTTL(userID int64, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(userID, 10),
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify checks signature and expiry together. Any malformed, tampered,
// expired, or wrongly signed token yields ok=false; verification never
// surfaces an error to the caller.
func (t *TokenManager) Verify(tokenString string) (Claims, bool) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return Claims{}, false
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, false
	}
	sub, err := mapClaims.GetSubject()
	if err != nil || sub == "" {
		return Claims{}, false
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return Claims{}, false
	}
	role, _ := mapClaims["role"].(string)

	return Claims{UserID: userID, Role: role}, true
}
