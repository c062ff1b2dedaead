// Package jwt implements the stateless session tokens: an HS256-signed
// access/refresh pair sharing one secret. Validity is decided entirely by
// signature and expiry; nothing is stored server-side.
package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/agenda-pj/accounts/pkg/user"
)

// Token uses. A refresh token is never accepted where an access token is
// expected, and vice versa.
const (
	UseAccess  = "access"
	UseRefresh = "refresh"
)

// ErrInvalidToken covers bad signature, expiry and wrong use alike; callers
// get no finer detail than "reject".
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims carries the registered claims plus the account email and the
// token's intended use.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Use   string `json:"use"`
}

// Identity is what a verified token proves.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

// Issuer mints and verifies session tokens.
type Issuer struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewIssuer(secret, issuer string, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), issuer: issuer, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// IssueAccessToken mints a short-lived token for protected routes.
func (i *Issuer) IssueAccessToken(userID uuid.UUID, email string) (string, error) {
	return i.sign(userID, email, UseAccess, i.accessTTL)
}

// IssueRefreshToken mints a long-lived token usable only at /refresh-token.
func (i *Issuer) IssueRefreshToken(userID uuid.UUID, email string) (string, error) {
	return i.sign(userID, email, UseRefresh, i.refreshTTL)
}

// IssuePair implements user.TokenIssuer.
func (i *Issuer) IssuePair(userID uuid.UUID, email string) (user.TokenPair, error) {
	access, err := i.IssueAccessToken(userID, email)
	if err != nil {
		return user.TokenPair{}, err
	}
	refresh, err := i.IssueRefreshToken(userID, email)
	if err != nil {
		return user.TokenPair{}, err
	}
	return user.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (i *Issuer) sign(userID uuid.UUID, email, use string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
		Use:   use,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify checks signature, expiry and intended use. Every failure mode maps
// to ErrInvalidToken.
func (i *Issuer) Verify(tokenStr, expectedUse string) (Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}
	if i.issuer != "" && claims.Issuer != i.issuer {
		return Identity{}, ErrInvalidToken
	}
	if claims.Use != expectedUse {
		return Identity{}, ErrInvalidToken
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: userID, Email: claims.Email}, nil
}

// Refresh verifies a refresh token and mints a new access token for the
// identity it carries. The refresh token itself stays valid until its own
// expiry; there is no rotation.
func (i *Issuer) Refresh(refreshToken string) (string, error) {
	id, err := i.Verify(refreshToken, UseRefresh)
	if err != nil {
		return "", err
	}
	return i.IssueAccessToken(id.UserID, id.Email)
}
