package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService groups the engine's secrets in the OS keychain.
	KeyringService = "leadscout"
	placesAccount  = "places_api_key"
	placesEnvVar   = "PLACES_API_KEY"
)

// GetPlacesAPIKey returns the maps API key: keychain first, then the
// PLACES_API_KEY environment variable.
func GetPlacesAPIKey() (string, error) {
	if key, err := keyring.Get(KeyringService, placesAccount); err == nil && strings.TrimSpace(key) != "" {
		return key, nil
	}
	if key := strings.TrimSpace(os.Getenv(placesEnvVar)); key != "" {
		return key, nil
	}
	return "", errors.New("places API key not found (set it in the keychain or via PLACES_API_KEY)")
}

func SetPlacesAPIKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("API key is empty")
	}
	return keyring.Set(KeyringService, placesAccount, key)
}

func DeletePlacesAPIKey() error {
	return keyring.Delete(KeyringService, placesAccount)
}
