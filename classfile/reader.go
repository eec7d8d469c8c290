// Copyright 2026 The jvmlet Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Reader is a forward-only, big-endian binary reader over a class file
// byte stream. Unlike saferwall's offset-addressed File (which owns a
// memory-mapped buffer and can seek to any offset), a Reader never seeks
// and never owns the underlying stream: it consumes bytes as it goes,
// matching the classfile format itself, which is a strict top-to-bottom
// sequence of fixed- and variable-length fields.
type Reader struct {
	r     io.Reader
	pos   int64
	buf8  [8]byte
}

// NewReader wraps r. r is not closed or otherwise owned by the Reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Pos reports how many bytes have been consumed so far.
func (r *Reader) Pos() int64 { return r.pos }

func (r *Reader) fill(n int) ([]byte, error) {
	buf := r.buf8[:n]
	if _, err := io.ReadFull(r.r, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, ErrUnexpectedEndOfStream
		}
		return nil, fmt.Errorf("classfile: reading %d bytes at offset %d: %w", n, r.pos, err)
	}
	r.pos += int64(n)
	return buf, nil
}

// U1 reads one unsigned byte.
func (r *Reader) U1() (uint8, error) {
	b, err := r.fill(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// U2 reads a big-endian u2.
func (r *Reader) U2() (uint16, error) {
	b, err := r.fill(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// U4 reads a big-endian u4.
func (r *Reader) U4() (uint32, error) {
	b, err := r.fill(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// I4 reads a big-endian signed 4-byte integer.
func (r *Reader) I4() (int32, error) {
	v, err := r.U4()
	return int32(v), err
}

// U8 reads a big-endian u8.
func (r *Reader) U8() (uint64, error) {
	b, err := r.fill(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// I8 reads a big-endian signed 8-byte integer.
func (r *Reader) I8() (int64, error) {
	v, err := r.U8()
	return int64(v), err
}

// Bytes reads n raw bytes and returns a copy (the internal scratch buffer
// is not reused for reads larger than 8 bytes, so this allocates directly
// from the stream).
func (r *Reader) Bytes(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, ErrUnexpectedEndOfStream
		}
		return nil, fmt.Errorf("classfile: reading %d bytes at offset %d: %w", n, r.pos, err)
	}
	r.pos += int64(n)
	return buf, nil
}
