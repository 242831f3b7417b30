package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Saw-Kyaw-Myint/bulletin-board/internal/domain/auth"
)

var ErrInvalidToken = errors.New("invalid token")

type accessClaims struct {
	User auth.UserClaims `json:"user"`
	jwt.RegisteredClaims
}

type refreshClaims struct {
	TokenType  string `json:"type"`
	RememberMe bool   `json:"remember_me,omitempty"`
	jwt.RegisteredClaims
}

// JWTIssuer signs HS256 access and refresh tokens. Access tokens embed the
// user snapshot so /me never touches the database.
type JWTIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func NewJWTIssuer(secret string, accessTTL time.Duration) *JWTIssuer {
	return &JWTIssuer{secret: []byte(secret), accessTTL: accessTTL}
}

func (i *JWTIssuer) NewAccessToken(user auth.UserClaims) (string, error) {
	now := time.Now()
	claims := accessClaims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.accessTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

func (i *JWTIssuer) NewRefreshToken(userID int64, ttl time.Duration, rememberMe bool) (string, error) {
	now := time.Now()
	claims := refreshClaims{
		TokenType:  "refresh",
		RememberMe: rememberMe,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        strconv.FormatInt(now.UnixNano(), 10),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign refresh token: %w", err)
	}
	return signed, nil
}

func (i *JWTIssuer) ParseRefreshToken(tokenString string) (int64, bool, error) {
	var claims refreshClaims
	if _, err := jwt.ParseWithClaims(tokenString, &claims, i.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})); err != nil {
		return 0, false, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.TokenType != "refresh" {
		return 0, false, ErrInvalidToken
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, false, ErrInvalidToken
	}
	return userID, claims.RememberMe, nil
}

func (i *JWTIssuer) ParseAccessToken(tokenString string) (auth.UserClaims, error) {
	var claims accessClaims
	if _, err := jwt.ParseWithClaims(tokenString, &claims, i.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})); err != nil {
		return auth.UserClaims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.User.ID == 0 {
		return auth.UserClaims{}, ErrInvalidToken
	}
	return claims.User, nil
}

func (i *JWTIssuer) keyFunc(_ *jwt.Token) (any, error) {
	return i.secret, nil
}
