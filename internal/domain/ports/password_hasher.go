package ports

// PasswordHasher abstrai o algoritmo de hash de senhas
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hashed, password string) bool
	// Fingerprint resume o hash atual para invalidar tokens de reset após a troca de senha
	Fingerprint(hashed string) string
}
