package auth

import "context"

// AuthVerifier valida un bearer token. Lo implementa el adapter de Odin.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
