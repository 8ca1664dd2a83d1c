// SPDX-FileCopyrightText: 2026 The skynet-secure authors
// SPDX-License-Identifier: Apache-2.0

package skynet_test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	skynet "github.com/mosiahvb/skynet-secure"
)

func generateKey(t *testing.T) []byte {
	t.Helper()

	key := make([]byte, skynet.KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)

	return key
}

func testTelemetry() skynet.Telemetry {
	return skynet.Telemetry{
		Timestamp:    1700000000.25,
		Latitude:     50.0,
		Longitude:    49.5,
		Altitude:     10.0,
		Speed:        20.0,
		Heading:      90.0,
		BatteryLevel: 87.3,
		Status:       skynet.StatusActive,
	}
}

func TestCipherTelemetryRoundTrip(t *testing.T) {
	require := require.New(t)

	c, err := skynet.NewCipher(generateKey(t))
	require.NoError(err)

	sent := testTelemetry()

	ct, err := c.EncryptTelemetry(sent)
	require.NoError(err)
	require.NotContains(string(ct), skynet.StatusActive)

	received, err := c.DecryptTelemetry(ct)
	require.NoError(err)
	require.Equal(sent, received)
}

func TestCipherCommandRoundTrip(t *testing.T) {
	require := require.New(t)

	c, err := skynet.NewCipher(generateKey(t))
	require.NoError(err)

	ct, err := c.EncryptCommand("recharge")
	require.NoError(err)

	cmd, err := c.DecryptCommand(ct)
	require.NoError(err)
	require.Equal("recharge", cmd)
}

func TestCipherTamperedCiphertext(t *testing.T) {
	require := require.New(t)

	c, err := skynet.NewCipher(generateKey(t))
	require.NoError(err)

	ct, err := c.EncryptTelemetry(testTelemetry())
	require.NoError(err)

	// Flipping any single byte must fail the integrity check.
	ct[len(ct)/2] ^= 0x01

	_, err = c.DecryptTelemetry(ct)
	require.ErrorIs(err, skynet.ErrIntegrity)
}

func TestCipherWrongKey(t *testing.T) {
	require := require.New(t)

	c1, err := skynet.NewCipher(generateKey(t))
	require.NoError(err)

	c2, err := skynet.NewCipher(generateKey(t))
	require.NoError(err)

	ct, err := c1.EncryptTelemetry(testTelemetry())
	require.NoError(err)

	_, err = c2.DecryptTelemetry(ct)
	require.ErrorIs(err, skynet.ErrIntegrity)
}

func TestCipherTruncatedCiphertext(t *testing.T) {
	require := require.New(t)

	c, err := skynet.NewCipher(generateKey(t))
	require.NoError(err)

	_, err = c.DecryptTelemetry([]byte("short"))
	require.ErrorIs(err, skynet.ErrIntegrity)
}

func TestCipherFormatError(t *testing.T) {
	require := require.New(t)

	c, err := skynet.NewCipher(generateKey(t))
	require.NoError(err)

	// A command frame authenticates fine but does not parse as telemetry.
	ct, err := c.EncryptCommand("up")
	require.NoError(err)

	_, err = c.DecryptTelemetry(ct)
	require.ErrorIs(err, skynet.ErrFormat)
}

func TestCipherInvalidKeySize(t *testing.T) {
	_, err := skynet.NewCipher([]byte("too short"))
	require.Error(t, err)
}
