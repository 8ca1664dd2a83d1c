// SPDX-FileCopyrightText: 2026 The skynet-secure authors
// SPDX-License-Identifier: Apache-2.0

package skynet_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	skynet "github.com/mosiahvb/skynet-secure"
)

func TestLoadOrGenerateKey(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "secret.key")

	key, err := skynet.LoadOrGenerateKey(path, skynet.KeySize)
	require.NoError(err)
	require.Len(key, skynet.KeySize)

	// The key must be persisted and identical on the next load.
	again, err := skynet.LoadOrGenerateKey(path, skynet.KeySize)
	require.NoError(err)
	require.Equal(key, again)

	persisted, err := os.ReadFile(path)
	require.NoError(err)
	require.Equal(key, persisted)
}

func TestLoadOrGenerateKeyIndependentSecrets(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()

	encKey, err := skynet.LoadOrGenerateKey(filepath.Join(dir, "encryption.key"), skynet.KeySize)
	require.NoError(err)

	authSecret, err := skynet.LoadOrGenerateKey(filepath.Join(dir, "auth.secret"), skynet.AuthSecretSize)
	require.NoError(err)

	require.NotEqual(encKey, authSecret)
}

func TestLoadOrGenerateKeyWriteError(t *testing.T) {
	require := require.New(t)

	// A directory that does not exist makes the first-generation write fail.
	_, err := skynet.LoadOrGenerateKey(filepath.Join(t.TempDir(), "missing", "secret.key"), skynet.KeySize)
	require.Error(err)
}
