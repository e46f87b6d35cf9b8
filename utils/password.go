package utils

import (
	"github.com/matthewhartstonge/argon2"
)

// HashAdminKey produces the encoded value expected in ADMIN_KEY_HASH.
func HashAdminKey(key string) (string, error) {
	argon := argon2.DefaultConfig()
	encoded, err := argon.HashEncoded([]byte(key))
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func VerifyAdminKey(encodedHash, key string) (bool, error) {
	ok, err := argon2.VerifyEncoded([]byte(key), []byte(encodedHash))
	if err != nil {
		return false, err
	}
	return ok, nil
}
