// SPDX-FileCopyrightText: 2026 The skynet-secure authors
// SPDX-License-Identifier: Apache-2.0

package skynet

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// LoadOrGenerateKey returns the raw contents of the key file at path,
// generating and persisting length fresh random bytes first if the file does
// not exist yet. The operation is idempotent across restarts.
//
// A read error on an existing file or a write error on first generation is
// returned to the caller and must be treated as fatal: a lost key makes all
// previously issued tokens and ciphertexts incompatible.
func LoadOrGenerateKey(path string, length int) ([]byte, error) {
	key, err := os.ReadFile(path)
	if err == nil {
		return key, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	key = make([]byte, length)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}

	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, fmt.Errorf("failed to persist key file: %w", err)
	}

	return key, nil
}
