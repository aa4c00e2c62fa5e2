package utils // package utils provides helper functions for token creation and hashing

import (
    "errors"  // sentinel for missing signing secret
    "strconv" // user IDs travel as the decimal subject claim
    "time"    // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// ErrNoSecret is returned when a token is requested but no signing
// secret is configured.
var ErrNoSecret = errors.New("jwt secret is not configured")

// SessionClaims are the claims embedded in a session token: the user
// id (as the registered subject), the role and the email.  The token
// is the sole credential; it is carried in a cookie and optionally a
// bearer header.
type SessionClaims struct {
    Role  string `json:"role"`
    Email string `json:"email"`
    jwt.RegisteredClaims
}

// SessionToken represents a signed session token along with its
// expiry.  The Token field contains the serialized JWT string.
type SessionToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// NewSessionToken builds and signs an HS256 JWT for a user.  It takes
// the signing secret, the user ID, role and email, and a TTL in days.
// Subject carries the user ID in decimal form.
func NewSessionToken(secret string, userID uint64, role, email string, ttlDays int) (SessionToken, error) {
    if secret == "" {
        return SessionToken{}, ErrNoSecret
    }
    now := time.Now().UTC()
    exp := now.Add(time.Duration(ttlDays) * 24 * time.Hour)
    claims := SessionClaims{
        Role:  role,
        Email: email,
        RegisteredClaims: jwt.RegisteredClaims{
            Subject:   strconv.FormatUint(userID, 10),
            IssuedAt:  jwt.NewNumericDate(now),
            ExpiresAt: jwt.NewNumericDate(exp),
        },
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return SessionToken{}, err
    }
    return SessionToken{Token: signed, Exp: exp}, nil
}

// VerifySessionToken parses and fully verifies a session token: HMAC
// signature, expiry and claim shape.  It returns the user ID and role
// on success and (0, "", false) for any malformed, forged or expired
// token.  There is deliberately no decode-only path; every enforcement
// point performs the signature check.
func VerifySessionToken(secret, raw string) (userID uint64, role string, ok bool) {
    claims := &SessionClaims{}
    tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
        if _, isHMAC := t.Method.(*jwt.SigningMethodHMAC); !isHMAC {
            return nil, jwt.ErrSignatureInvalid
        }
        return []byte(secret), nil
    })
    if err != nil || tok == nil || !tok.Valid {
        return 0, "", false
    }
    id, err := strconv.ParseUint(claims.Subject, 10, 64)
    if err != nil || id == 0 {
        return 0, "", false
    }
    return id, claims.Role, true
}
