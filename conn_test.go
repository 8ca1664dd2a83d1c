// SPDX-FileCopyrightText: 2026 The skynet-secure authors
// SPDX-License-Identifier: Apache-2.0

package skynet

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStreamConnFraming(t *testing.T) {
	require := require.New(t)

	a, b := net.Pipe()
	ca, cb := NewStreamConn(a), NewStreamConn(b)

	frames := [][]byte{
		[]byte("AUTH_SUCCESS"),
		{},
		make([]byte, 4096),
	}

	go func() {
		for _, frame := range frames {
			ca.WriteFrame(frame) //nolint:errcheck
		}
	}()

	for _, want := range frames {
		got, err := cb.ReadFrame()
		require.NoError(err)
		require.Equal(want, got)
	}
}

func TestStreamConnReadDeadline(t *testing.T) {
	require := require.New(t)

	_, b := net.Pipe()
	cb := NewStreamConn(b)

	require.NoError(cb.SetReadDeadline(time.Now().Add(10 * time.Millisecond)))

	_, err := cb.ReadFrame()
	require.Error(err)
}

func TestStreamConnOversizedFrame(t *testing.T) {
	require := require.New(t)

	a, b := net.Pipe()
	ca, cb := NewStreamConn(a), NewStreamConn(b)

	require.Error(ca.WriteFrame(make([]byte, maxFrameSize+1)))

	// A peer announcing an oversized frame is cut off before allocation.
	go func() {
		a.Write([]byte{0xff, 0xff, 0xff, 0xff}) //nolint:errcheck
	}()

	_, err := cb.ReadFrame()
	require.ErrorIs(err, errFrameTooLarge)
}
