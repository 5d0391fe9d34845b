package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("missing token")
	ErrTokenFormat  = errors.New("invalid token format")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the verified identity extracted from a bearer token. Firebase
// tokens carry the user id both as the registered subject and as "user_id".
type Claims struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	FirebaseUID string `json:"user_id"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() string {
	if c.Subject != "" {
		return c.Subject
	}
	return c.FirebaseUID
}

// Username is the display name recorded on recipes: the local part of the
// token's email address.
func (c *Claims) Username() string {
	local, _, _ := strings.Cut(c.Email, "@")
	if local == "" {
		return "User"
	}
	return local
}

// BearerToken extracts the raw token from an Authorization header value.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", ErrTokenFormat
	}
	return token, nil
}

// Verifier checks a bearer token's signature and yields its claims.
// Tokens are never accepted on a bare payload decode.
type Verifier interface {
	Verify(token string) (*Claims, error)
}

// HMACVerifier validates HS256 tokens against a shared secret.
type HMACVerifier struct {
	secret []byte
}

func NewHMACVerifier(secret string) *HMACVerifier {
	return &HMACVerifier{secret: []byte(secret)}
}

func (v *HMACVerifier) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.UserID() == "" {
		return nil, fmt.Errorf("%w: no subject", ErrInvalidToken)
	}
	return claims, nil
}

// CertVerifier validates RS256 tokens against the identity provider's
// published x509 certificates, keyed by the token's kid header.
type CertVerifier struct {
	certs    *certCache
	audience string
	issuer   string
}

func NewCertVerifier(certsURL, audience, issuer string) *CertVerifier {
	return &CertVerifier{
		certs:    newCertCache(certsURL),
		audience: audience,
		issuer:   issuer,
	}
}

func (v *CertVerifier) Verify(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"RS256"})}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("token has no kid header")
		}
		return v.certs.Key(kid)
	}, opts...)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.UserID() == "" {
		return nil, fmt.Errorf("%w: no subject", ErrInvalidToken)
	}
	return claims, nil
}
