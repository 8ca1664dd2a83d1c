// SPDX-FileCopyrightText: 2026 The skynet-secure authors
// SPDX-License-Identifier: Apache-2.0

package skynet

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"
)

var errFrameTooLarge = errors.New("frame exceeds maximum size")

// Conn carries discrete, ordered frames over a reliable byte stream. The
// handshake and the secure channel only ever see whole frames; how they are
// delimited is a transport concern.
type Conn interface {
	// ReadFrame blocks until the next complete frame arrives.
	ReadFrame() ([]byte, error)

	// WriteFrame sends one frame. Safe for concurrent use.
	WriteFrame([]byte) error

	// SetReadDeadline bounds all future ReadFrame calls. The zero time
	// removes the deadline.
	SetReadDeadline(t time.Time) error

	Close() error

	// RemoteAddr identifies the peer, for logging only.
	RemoteAddr() string
}

// streamConn frames a net.Conn with a 4-byte big-endian length prefix.
type streamConn struct {
	nc net.Conn
	rd *bufio.Reader

	wmu sync.Mutex
}

// NewStreamConn wraps a reliable byte-stream connection into a framed Conn.
func NewStreamConn(nc net.Conn) Conn {
	return &streamConn{
		nc: nc,
		rd: bufio.NewReader(nc),
	}
}

func (c *streamConn) ReadFrame() ([]byte, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(c.rd, hdr[:]); err != nil {
		return nil, err
	}

	length := binary.BigEndian.Uint32(hdr[:])
	if length > maxFrameSize {
		return nil, errFrameTooLarge
	}

	buf := make([]byte, length)
	if _, err := io.ReadFull(c.rd, buf); err != nil {
		return nil, err
	}

	return buf, nil
}

func (c *streamConn) WriteFrame(frame []byte) error {
	if len(frame) > maxFrameSize {
		return errFrameTooLarge
	}

	buf := make([]byte, 4+len(frame))
	binary.BigEndian.PutUint32(buf, uint32(len(frame)))
	copy(buf[4:], frame)

	c.wmu.Lock()
	defer c.wmu.Unlock()

	if n, err := c.nc.Write(buf); err != nil {
		return err
	} else if n != len(buf) {
		return fmt.Errorf("partial write")
	}

	return nil
}

func (c *streamConn) SetReadDeadline(t time.Time) error {
	return c.nc.SetReadDeadline(t)
}

func (c *streamConn) Close() error {
	return c.nc.Close()
}

func (c *streamConn) RemoteAddr() string {
	return c.nc.RemoteAddr().String()
}
