package test

import "math/rand"

const (
	lowerAlnum = "abcdefghijklmnopqrstuvwxyz0123456789"
	upperAlpha = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// RandomLogin returns a lowercase operator login of 6 to 14 characters.
func RandomLogin() string {
	return randomString(lowerAlnum, 6+rand.Intn(9))
}

// RandomPassword returns a mixed-case password of 16 to 32 characters.
func RandomPassword() string {
	return randomString(lowerAlnum+upperAlpha, 16+rand.Intn(17))
}

func randomString(alphabet string, n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(buf)
}
