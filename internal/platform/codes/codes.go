package codes

import (
	"crypto/rand"
	"math/big"
)

// Charset alfanumérico + símbolos, igual para todos los códigos del
// flujo de setup y el community code.
const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*"

// Generate retorna un código aleatorio de n caracteres usando crypto/rand.
func Generate(n int) string {
	if n <= 0 {
		return ""
	}

	max := big.NewInt(int64(len(charset)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// rand.Reader no falla en la práctica; si falla, no hay
			// fallback seguro posible
			panic("codes: crypto/rand unavailable: " + err.Error())
		}
		out[i] = charset[idx.Int64()]
	}
	return string(out)
}

// Prefixed retorna "PREFIX-xxxx".
func Prefixed(prefix string, n int) string {
	return prefix + "-" + Generate(n)
}
