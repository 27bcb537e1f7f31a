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
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEnvelope(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		saltSize int
		expected error
		iv, ct   []byte
	}{
		{
			name:     "Not base64",
			input:    "not-base64!!",
			expected: ErrMalformedInput,
		},
		{
			name:     "Empty input is shorter than an IV",
			input:    "",
			expected: ErrMalformedInput,
		},
		{
			name:     "Too short for IV",
			input:    "aGVsbG8gd29ybGQ=",
			expected: ErrMalformedInput,
		},
		{
			name:     "Too short for salt and IV",
			input:    "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA",
			saltSize: 16,
			expected: ErrMalformedInput,
		},
		{
			name:  "IV only",
			input: "MDEyMzQ1Njc4OWFiY2RlZg==",
			iv:    []byte("0123456789abcdef"),
			ct:    []byte{},
		},
		{
			name:  "IV and ciphertext",
			input: "MDEyMzQ1Njc4OWFiY2RlZmhlbGxv",
			iv:    []byte("0123456789abcdef"),
			ct:    []byte("hello"),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			e, err := ParseEnvelope(test.input, test.saltSize, 16)
			if test.expected != nil {
				assert.True(t, errors.Is(err, test.expected), "expected %v, got %v", test.expected, err)
				var mie MalformedInputError
				assert.True(t, errors.As(err, &mie))
				return
			}
			assert.NoError(t, err)
			assert.True(t, bytes.Equal(test.iv, e.IV))
			assert.True(t, bytes.Equal(test.ct, e.CT))
			assert.Nil(t, e.Salt)
		})
	}
}

func TestEnvelopeString(t *testing.T) {
	e := Envelope{
		Salt: []byte("salt"),
		IV:   []byte("0123456789abcdef"),
		CT:   []byte("hello"),
	}
	text := e.String()

	parsed, err := ParseEnvelope(text, 4, 16)
	assert.NoError(t, err)
	assert.Equal(t, e.Salt, parsed.Salt)
	assert.Equal(t, e.IV, parsed.IV)
	assert.Equal(t, e.CT, parsed.CT)

	m, err := e.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, text, string(m))

	assert.Equal(t, "", Envelope{}.String())
	assert.True(t, Envelope{}.IsZero())
}

func TestErrorsMatchSentinels(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name     string
		err      error
		expected error
		message  string
	}{
		{
			name:     "invalid argument without reason",
			err:      InvalidArgumentError{Argument: "passphrase"},
			expected: ErrInvalidArgument,
			message:  `invalid argument "passphrase": must have a valid value`,
		},
		{
			name:     "malformed input wraps cause",
			err:      MalformedInputError{Reason: "bad", Err: cause},
			expected: ErrMalformedInput,
			message:  "malformed input: bad: boom",
		},
		{
			name:     "decryption failed wraps cause",
			err:      DecryptionFailedError{Err: cause},
			expected: ErrDecryptionFailed,
			message:  "decryption failed: boom",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.ErrorIs(t, test.err, test.expected)
			assert.Equal(t, test.message, test.err.Error())
			for _, other := range []error{ErrInvalidArgument, ErrMalformedInput, ErrDecryptionFailed} {
				if other != test.expected {
					assert.NotErrorIs(t, test.err, other)
				}
			}
		})
	}
	assert.ErrorIs(t, DecryptionFailedError{Err: cause}, cause)
}

func TestParseKDFType(t *testing.T) {
	tests := []struct {
		input    string
		expected KDFType
		err      bool
	}{
		{input: "", expected: KDFTypeSHA512},
		{input: "SHA512", expected: KDFTypeSHA512},
		{input: "pbkdf2", expected: KDFTypePBKDF2},
		{input: " argon2id ", expected: KDFTypeArgon2id},
		{input: "scrypt", err: true},
	}
	for _, test := range tests {
		actual, err := ParseKDFType(test.input)
		if test.err {
			assert.ErrorIs(t, err, ErrInvalidArgument)
			continue
		}
		assert.NoError(t, err)
		assert.Equal(t, test.expected, actual)
	}

	var k KDFType
	assert.NoError(t, k.UnmarshalText([]byte("argon2id")))
	assert.Equal(t, KDFTypeArgon2id, k)
	assert.Equal(t, "KDFType(9)", KDFType(9).String())
}

func TestKDFInfoWithDefaults(t *testing.T) {
	k := KDFInfo{Type: KDFTypeArgon2id}.WithDefaults()
	assert.Equal(t, DefaultArgon2Iterations, k.Iterations)
	assert.Equal(t, DefaultArgon2Memory, k.Memory)
	assert.Equal(t, DefaultArgon2Parallelism, k.Parallelism)
	assert.Equal(t, SaltSize, k.SaltSize())

	p := KDFInfo{Type: KDFTypePBKDF2, Iterations: 10}.WithDefaults()
	assert.Equal(t, 10, p.Iterations)

	s := KDFInfo{}.WithDefaults()
	assert.Equal(t, 0, s.SaltSize())
	assert.Equal(t, 0, s.Iterations)
}
