// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads Spotify API credentials from a directory of
// plain-text files. Each file holds one value: the filename is the key
// name and the file contents (trimmed) are the value.
//
// Supported key files: spotify-client-id, spotify-client-secret.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"audioscout/internal/auth"
)

const (
	clientIDFile     = "spotify-client-id"
	clientSecretFile = "spotify-client-secret"
)

// Load reads credentials from dir. A missing directory or missing files
// are not errors; the corresponding fields stay empty so flags or
// environment variables can supply them instead.
func Load(dir string) (auth.Credentials, error) {
	creds := auth.Credentials{}

	id, err := readSecret(filepath.Join(dir, clientIDFile))
	if err != nil {
		return creds, err
	}
	secret, err := readSecret(filepath.Join(dir, clientSecretFile))
	if err != nil {
		return creds, err
	}

	creds.ClientID = id
	creds.ClientSecret = secret
	return creds, nil
}

func readSecret(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading secret %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}
