package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jwar28/rappiclone/pkg/domain/model"
)

// Identity is what a verified access token says about the caller.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

// Tokens verifies HMAC signed bearer tokens. The subject claim carries the
// profile id.
type Tokens interface {
	Verify(token string) (Identity, error)
	Issue(identity Identity, ttl time.Duration) (string, error)
}

func NewTokens(secret string) Tokens {
	return &tokens{secret: []byte(secret)}
}

type tokens struct {
	secret []byte
}

func (t *tokens) Verify(tokenString string) (Identity, error) {
	if strings.TrimSpace(tokenString) == "" {
		return Identity{}, model.ErrUnauthenticated
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return Identity{}, errors.Wrap(model.ErrUnauthenticated, "invalid token")
	}

	subject, err := claims.GetSubject()
	if err != nil {
		return Identity{}, errors.Wrap(model.ErrUnauthenticated, "invalid subject")
	}
	userID, err := uuid.Parse(subject)
	if err != nil || userID == uuid.Nil {
		return Identity{}, errors.Wrap(model.ErrUnauthenticated, "invalid subject")
	}

	email, _ := claims["email"].(string)
	return Identity{UserID: userID, Email: email}, nil
}

func (t *tokens) Issue(identity Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   identity.UserID.String(),
		"email": identity.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	})

	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}
	return signed, nil
}
