package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainerrors "github.com/rafabene/mediafeed-backend/internal/domain/errors"
	"github.com/rafabene/mediafeed-backend/internal/domain/ports"
)

const audiencePrefix = "mediafeed:"

// Claims carrega o sujeito e os dados extras de cada finalidade de token
type Claims struct {
	jwt.RegisteredClaims
	Email       string `json:"email,omitempty"`
	Fingerprint string `json:"pwf,omitempty"`
}

// JWTIssuer implementa ports.TokenIssuer com HS256
type JWTIssuer struct {
	secret []byte
	ttls   map[ports.TokenPurpose]time.Duration
	now    func() time.Time
}

// NewJWTIssuer cria um emissor com validade distinta por finalidade
func NewJWTIssuer(secret string, accessTTL, resetTTL, verifyTTL time.Duration) *JWTIssuer {
	return &JWTIssuer{
		secret: []byte(secret),
		ttls: map[ports.TokenPurpose]time.Duration{
			ports.TokenPurposeAccess: accessTTL,
			ports.TokenPurposeReset:  resetTTL,
			ports.TokenPurposeVerify: verifyTTL,
		},
		now: time.Now,
	}
}

func audience(purpose ports.TokenPurpose) string {
	if purpose == ports.TokenPurposeAccess {
		return audiencePrefix + "auth"
	}
	return audiencePrefix + string(purpose)
}

func (i *JWTIssuer) Issue(claims ports.TokenClaims) (string, error) {
	ttl, ok := i.ttls[claims.Purpose]
	if !ok {
		return "", fmt.Errorf("unknown token purpose %q", claims.Purpose)
	}

	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject,
			Audience:  jwt.ClaimStrings{audience(claims.Purpose)},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email:       claims.Email,
		Fingerprint: claims.Fingerprint,
	})

	return token.SignedString(i.secret)
}

func (i *JWTIssuer) Parse(purpose ports.TokenPurpose, tokenString string) (*ports.TokenClaims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(audience(purpose)),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, errors.Join(domainerrors.ErrBadToken, err)
	}

	if !token.Valid || claims.Subject == "" {
		return nil, domainerrors.ErrBadToken
	}

	return &ports.TokenClaims{
		Subject:     claims.Subject,
		Purpose:     purpose,
		Email:       claims.Email,
		Fingerprint: claims.Fingerprint,
	}, nil
}
