package auth

// Claims del veterinario autenticado. UserID se guarda como calculated_by.
type Claims struct {
	UserID   string
	Email    string
	TenantID string
}
