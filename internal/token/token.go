package token

import (
	"crypto/rand"
	"math/big"
)

// Алфавит токена: латиница в обоих регистрах и цифры (62 символа).
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const (
	// DefaultLength — длина полного токена.
	DefaultLength = 32
	// ShortLength — длина короткого токена для пригласительных ссылок.
	ShortLength = 16
)

// Generate возвращает криптостойкий случайный токен заданной длины.
// Источник — crypto/rand, выборка без смещения по модулю.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}
	max := big.NewInt(int64(len(alphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = alphabet[n.Int64()]
	}
	return string(buf), nil
}

// GenerateShort возвращает короткий токен для URL.
func GenerateShort() (string, error) {
	return Generate(ShortLength)
}
