// SPDX-FileCopyrightText: 2026 The skynet-secure authors
// SPDX-License-Identifier: Apache-2.0

package skynet_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	skynet "github.com/mosiahvb/skynet-secure"
)

func TestChallengeFreshness(t *testing.T) {
	require := require.New(t)

	c1, err := skynet.NewChallenge()
	require.NoError(err)
	require.Len(c1, 64)

	_, err = hex.DecodeString(c1)
	require.NoError(err)

	c2, err := skynet.NewChallenge()
	require.NoError(err)
	require.NotEqual(c1, c2)
}

func TestChallengeResponseBinding(t *testing.T) {
	require := require.New(t)

	a := skynet.NewTokenAuthority([]byte("test-secret"))

	challenge, err := skynet.NewChallenge()
	require.NoError(err)

	response, err := a.Respond(challenge, skynet.IdentityDrone)
	require.NoError(err)

	require.True(a.VerifyResponse(challenge, response, skynet.IdentityDrone))

	// A response is bound to its identity...
	require.False(a.VerifyResponse(challenge, response, skynet.IdentityAPI))

	// ...and to its nonce.
	other, err := skynet.NewChallenge()
	require.NoError(err)
	require.False(a.VerifyResponse(other, response, skynet.IdentityDrone))
}

func TestChallengeResponseWrongSecret(t *testing.T) {
	require := require.New(t)

	a := skynet.NewTokenAuthority([]byte("test-secret"))
	b := skynet.NewTokenAuthority([]byte("other-secret"))

	challenge, err := skynet.NewChallenge()
	require.NoError(err)

	response, err := b.Respond(challenge, skynet.IdentityDrone)
	require.NoError(err)

	require.False(a.VerifyResponse(challenge, response, skynet.IdentityDrone))
}

func TestChallengeResponseMalformed(t *testing.T) {
	require := require.New(t)

	a := skynet.NewTokenAuthority([]byte("test-secret"))

	challenge, err := skynet.NewChallenge()
	require.NoError(err)

	require.False(a.VerifyResponse(challenge, "not hex", skynet.IdentityDrone))
	require.False(a.VerifyResponse(challenge, "", skynet.IdentityDrone))
	require.False(a.VerifyResponse("not hex", "deadbeef", skynet.IdentityDrone))

	_, err = a.Respond("not hex", skynet.IdentityDrone)
	require.Error(err)
}
