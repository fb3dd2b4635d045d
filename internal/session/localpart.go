package session

import (
	"strings"

	"github.com/google/uuid"
)

// LocalPartLength is the length of generated mailbox names.
const LocalPartLength = 10

// Password is the fixed placeholder used for every account. The account
// is disposable and this value is not a secret.
const Password = "Password@123"

const localPartAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// newLocalPart returns LocalPartLength random characters from [a-z0-9],
// drawn from the random bytes of v4 UUIDs. Bytes at or above 252 are
// rejected so every character is equally likely.
func newLocalPart() string {
	var b strings.Builder
	for b.Len() < LocalPartLength {
		u := uuid.New()
		for i, c := range u {
			// Bytes 6 and 8 carry the version and variant bits.
			if i == 6 || i == 8 || c >= 252 {
				continue
			}
			b.WriteByte(localPartAlphabet[int(c)%len(localPartAlphabet)])
			if b.Len() == LocalPartLength {
				break
			}
		}
	}
	return b.String()
}
