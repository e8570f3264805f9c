package service

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/marketplace-roles/internal/core/domain"
	"github.com/99minutos/marketplace-roles/internal/core/ports"
)

var _ ports.TokenService = (*TokenService)(nil)

// TokenService implements login and token decoding.
//
// Without a signing secret tokens are unsigned JWTs ("alg":"none", empty
// third segment) and Parse trusts whatever claims a well-formed token
// carries. With a secret, tokens are HS256-signed and Parse verifies them.
type TokenService struct {
	store  ports.CredentialStore
	secret []byte
	parser *jwt.Parser
}

func NewTokenService(store ports.CredentialStore, signingSecret string) *TokenService {
	s := &TokenService{store: store}
	if signingSecret != "" {
		s.secret = []byte(signingSecret)
		s.parser = jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	} else {
		s.parser = jwt.NewParser()
	}
	return s
}

// Signed reports whether issued tokens carry an HMAC signature.
func (s *TokenService) Signed() bool {
	return len(s.secret) > 0
}

func (s *TokenService) Issue(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	rec, err := s.store.Lookup(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("issue token: %w", err)
	}

	if !passwordMatches(rec, password) {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(domain.TokenClaims{Subject: rec.Username, Role: rec.Role})
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

func (s *TokenService) Parse(token string) (*domain.TokenClaims, error) {
	claims := jwt.MapClaims{}

	var err error
	if s.Signed() {
		_, err = s.parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		})
	} else {
		err = s.decodeUnverified(token, claims)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedToken, err)
	}

	if len(claims) == 0 {
		return nil, fmt.Errorf("%w: empty claim set", domain.ErrMalformedToken)
	}

	// Unknown roles decode to the zero Role and never pass a role gate.
	sub, _ := claims["sub"].(string)
	rawRole, _ := claims["role"].(string)
	role, _ := domain.ParseRole(rawRole)

	return &domain.TokenClaims{Subject: sub, Role: role}, nil
}

// decodeUnverified only checks structure: three segments, a JSON object
// header and a JSON object payload. The header's alg is never consulted.
func (s *TokenService) decodeUnverified(token string, claims jwt.MapClaims) error {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return jwt.ErrTokenMalformed
	}

	var header map[string]any
	if err := s.decodeSegment(parts[0], &header); err != nil {
		return fmt.Errorf("header: %w", err)
	}
	if header == nil {
		return fmt.Errorf("header: %w", jwt.ErrTokenMalformed)
	}
	if err := s.decodeSegment(parts[1], &claims); err != nil {
		return fmt.Errorf("payload: %w", err)
	}
	return nil
}

func (s *TokenService) decodeSegment(seg string, v any) error {
	raw, err := s.parser.DecodeSegment(seg)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

func (s *TokenService) generateToken(c domain.TokenClaims) (string, error) {
	claims := jwt.MapClaims{
		"sub":  c.Subject,
		"role": c.Role.String(),
	}

	if s.Signed() {
		return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	}
	return jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
}

func passwordMatches(rec domain.UserRecord, password string) bool {
	if rec.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(rec.Password), []byte(password)) == 1
}
