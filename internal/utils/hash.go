package utils

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 12

// bcrypt only keys on the first 72 bytes; GenerateFromPassword rejects
// longer inputs while CompareHashAndPassword silently truncates them.
func HashPassword(pw string) (string, error) {
	b := []byte(pw)
	if len(b) > 72 {
		b = b[:72]
	}
	h, err := bcrypt.GenerateFromPassword(b, bcryptCost)
	return string(h), err
}

func CheckPassword(hashed, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
