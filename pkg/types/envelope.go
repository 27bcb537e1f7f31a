/*
 *   Copyright 2023 Martin Proffitt <mproffitt@choclab.net>
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 */
package types

import (
	"encoding/base64"
	"fmt"
)

var b64enc = base64.StdEncoding.Strict()

// Envelope - the only artifact the text cipher emits. It carries everything
// needed for decryption except the passphrase.
//
// The format is:
//
//	base64( [<salt>] <iv> <ct> )
//
// Where:
//
//	<salt> is present only for salted key derivation functions - SaltSize bytes
//	<iv>   is the initialization vector - block size bytes, not secret
//	<ct>   is the AES-CBC ciphertext - a non-zero multiple of the block size
//
// There is no separator, header or version byte; the reader must know the
// salt and IV lengths in advance.
type Envelope struct {
	Salt, IV, CT []byte
}

// IsZero - returns true if the envelope is empty
func (e Envelope) IsZero() bool {
	return e.Salt == nil && e.IV == nil && e.CT == nil
}

// Bytes - the raw concatenation of salt, IV and ciphertext
func (e Envelope) Bytes() []byte {
	b := make([]byte, 0, len(e.Salt)+len(e.IV)+len(e.CT))
	b = append(b, e.Salt...)
	b = append(b, e.IV...)
	b = append(b, e.CT...)
	return b
}

// String - the base64 text form of the envelope
func (e Envelope) String() string {
	if e.IsZero() {
		return ""
	}
	return b64enc.EncodeToString(e.Bytes())
}

// MarshalText - convert an Envelope to its base64 text form
func (e Envelope) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// ParseEnvelope decodes the base64 text form of an envelope and splits it
// into salt, IV and ciphertext. The returned slices alias a single freshly
// decoded buffer.
func ParseEnvelope(text string, saltSize, ivSize int) (e Envelope, err error) {
	var raw []byte
	if raw, err = b64decode([]byte(text)); err != nil {
		return e, MalformedInputError{Reason: "envelope is not valid base64", Err: err}
	}

	if len(raw) < saltSize+ivSize {
		return e, MalformedInputError{
			Reason: fmt.Sprintf("envelope has %d bytes, need at least %d", len(raw), saltSize+ivSize),
		}
	}

	if saltSize > 0 {
		e.Salt = raw[:saltSize]
	}
	e.IV = raw[saltSize : saltSize+ivSize]
	e.CT = raw[saltSize+ivSize:]
	return e, nil
}

func b64decode(src []byte) (dst []byte, err error) {
	var n int
	dst = make([]byte, b64enc.DecodedLen(len(src)))
	if n, err = b64enc.Decode(dst, src); err != nil {
		return nil, err
	}
	dst = dst[:n]
	return
}
