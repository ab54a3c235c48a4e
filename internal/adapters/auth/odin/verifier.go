package odin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vet-medication-reference/internal/platform/logger"
	"vet-medication-reference/internal/ports/auth"
)

var ErrTokenEmpty = errors.New("token is empty")

// Verifier implementa auth.AuthVerifier usando Odin. Los fallos de upstream se
// loguean; el middleware deja pasar el request sin claims.
type Verifier struct {
	client *Client
	log    logger.Logger
}

func NewVerifier(client *Client, log logger.Logger) *Verifier {
	if log == nil {
		log = logger.Nop()
	}
	return &Verifier{client: client, log: log}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.client == nil {
		return auth.Claims{}, ErrOdinNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	claims, err := v.client.VerifyToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrOdinUpstream) {
			v.log.Warn("odin verify failed", map[string]any{"err": err})
		}
		return auth.Claims{}, fmt.Errorf("odin verify failed: %w", err)
	}
	return claims, nil
}
