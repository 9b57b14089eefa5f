package auth

import "github.com/zalando/go-keyring"

const (
	appName = "resale"
	keyName = "access-token"
)

func Save(token string) error {
	return keyring.Set(appName, keyName, token)
}

func Get() (string, error) {
	return keyring.Get(appName, keyName)
}
