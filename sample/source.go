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

package sample

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/fentec-project/gorv/internal/keystream"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

// KeyedSource is a deterministic rand.Source backed by a Salsa20
// keystream. Two sources with the same key produce the same sequence.
// It is not safe for concurrent use.
type KeyedSource struct {
	stream *keystream.Stream
}

// NewKeyedSource returns a source whose output is determined by key.
func NewKeyedSource(key *[32]byte) *KeyedSource {
	return &KeyedSource{stream: keystream.New(key)}
}

// NewSeededSource returns a source whose output is determined by seed.
// The key is derived from the seed with BLAKE2b-256.
func NewSeededSource(seed uint64) *KeyedSource {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], seed)
	key := blake2b.Sum256(b[:])
	return NewKeyedSource(&key)
}

// NewRandomSource returns a source keyed from crypto/rand.
func NewRandomSource() (*KeyedSource, error) {
	var key [32]byte
	if _, err := rand.Read(key[:]); err != nil {
		return nil, errors.Wrap(err, "cannot read random key")
	}
	return NewKeyedSource(&key), nil
}

// Uint64 returns the next 64 bits of the keystream.
func (k *KeyedSource) Uint64() uint64 {
	return k.stream.Uint64()
}
