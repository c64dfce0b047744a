/*
 * Copyright (c) 2018 XLAB d.o.o
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package keystream turns a 32-byte key into an unbounded,
// reproducible stream of pseudo-random bytes.
package keystream

import (
	"encoding/binary"

	"golang.org/x/crypto/salsa20"
)

// chunkSize is the number of keystream bytes produced per nonce.
const chunkSize = 4096

// Stream is a Salsa20 keystream. Each chunk is generated under its own
// 8-byte nonce (the chunk index), so the stream never repeats for a key.
type Stream struct {
	key   [32]byte
	chunk uint64
	buf   []byte
	pos   int
}

// New returns a Stream keyed by key. The key is copied.
func New(key *[32]byte) *Stream {
	s := &Stream{
		key: *key,
		buf: make([]byte, chunkSize),
		pos: chunkSize,
	}
	return s
}

// Read fills p with keystream bytes. It never fails.
func (s *Stream) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if s.pos == len(s.buf) {
			s.refill()
		}
		c := copy(p[n:], s.buf[s.pos:])
		s.pos += c
		n += c
	}
	return n, nil
}

// Uint64 returns the next 8 keystream bytes as a little-endian uint64.
func (s *Stream) Uint64() uint64 {
	if len(s.buf)-s.pos < 8 {
		var b [8]byte
		s.Read(b[:])
		return binary.LittleEndian.Uint64(b[:])
	}
	v := binary.LittleEndian.Uint64(s.buf[s.pos:])
	s.pos += 8
	return v
}

func (s *Stream) refill() {
	in := make([]byte, chunkSize) // input is initialized to zeros
	nonce := make([]byte, 8)
	binary.LittleEndian.PutUint64(nonce, s.chunk)
	salsa20.XORKeyStream(s.buf, in, nonce, &s.key)
	s.chunk++
	s.pos = 0
}
