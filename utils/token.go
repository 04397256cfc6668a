package utils

import (
	"math/rand"
	"time"
)

var codeRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// GenerateInviteCode returns a short uppercase code a partner can type in
// to join a couple.
func GenerateInviteCode(length int) string {
	const charset = "ABCDEFGHJKMNPQRSTUVWXYZ23456789" // no 0/O, 1/I/L

	code := make([]byte, length)
	for i := range code {
		code[i] = charset[codeRand.Intn(len(charset))]
	}
	return string(code)
}
