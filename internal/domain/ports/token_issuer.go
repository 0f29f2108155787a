package ports

// TokenPurpose separa tokens de acesso, reset de senha e verificação
type TokenPurpose string

const (
	TokenPurposeAccess TokenPurpose = "access"
	TokenPurposeReset  TokenPurpose = "reset"
	TokenPurposeVerify TokenPurpose = "verify"
)

// TokenClaims são os dados extraídos de um token válido
type TokenClaims struct {
	Subject     string
	Purpose     TokenPurpose
	Email       string
	Fingerprint string
}

// TokenIssuer emite e valida tokens assinados
type TokenIssuer interface {
	Issue(claims TokenClaims) (string, error)
	Parse(purpose TokenPurpose, token string) (*TokenClaims, error)
}
