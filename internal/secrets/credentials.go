package secrets

import (
	"fmt"
	"strings"
)

// Names of the secrets required at startup
const (
	EndpointName = "AZURE_ENDPOINT"
	KeyName      = "AZURE_KEY"
)

// Credentials authenticate calls to the vision service
type Credentials struct {
	Endpoint string
	Key      string
}

// MissingError is returned when required secrets are absent
type MissingError struct {
	Names []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("missing required secrets: %s", strings.Join(e.Names, ", "))
}

// LoadCredentials reads the endpoint and key from store. Empty values count
// as missing.
func LoadCredentials(store Store) (Credentials, error) {
	var (
		creds   Credentials
		missing []string
	)

	if value, ok := store.Lookup(EndpointName); ok && strings.TrimSpace(value) != "" {
		creds.Endpoint = strings.TrimSpace(value)
	} else {
		missing = append(missing, EndpointName)
	}

	if value, ok := store.Lookup(KeyName); ok && strings.TrimSpace(value) != "" {
		creds.Key = strings.TrimSpace(value)
	} else {
		missing = append(missing, KeyName)
	}

	if len(missing) > 0 {
		return Credentials{}, &MissingError{Names: missing}
	}
	return creds, nil
}
