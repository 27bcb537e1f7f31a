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
package crypto

import (
	"crypto/aes"
	cryptorand "crypto/rand"
	"io"
	"unicode/utf8"

	"github.com/notapipeline/extensions/pkg/types"
)

// TextCipher encrypts short text payloads under a passphrase.
//
// A TextCipher holds only immutable configuration and may be shared between
// goroutines. Every call derives its own key and IV.
type TextCipher struct {
	random io.Reader
	kdf    types.KDFInfo
}

type Option func(*TextCipher)

// WithRandom replaces the source used for IVs and salts. It must be
// cryptographically secure outside of tests.
func WithRandom(r io.Reader) Option {
	return func(c *TextCipher) {
		if r != nil {
			c.random = r
		}
	}
}

// WithKDF selects the key derivation function. Anything other than
// KDFTypeSHA512 produces salted envelopes that older readers cannot open.
func WithKDF(kdf types.KDFInfo) Option {
	return func(c *TextCipher) {
		c.kdf = kdf.WithDefaults()
	}
}

func New(opts ...Option) *TextCipher {
	c := &TextCipher{
		random: cryptorand.Reader,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// KDF returns the key derivation settings in use
func (c *TextCipher) KDF() types.KDFInfo {
	return c.kdf
}

// Encrypt returns base64([salt] || IV || ciphertext) for plaintext.
func (c *TextCipher) Encrypt(plaintext, passphrase string) (string, error) {
	if passphrase == "" {
		return "", types.InvalidArgumentError{Argument: "passphrase"}
	}
	if plaintext == "" {
		return "", types.InvalidArgumentError{Argument: "plaintext"}
	}
	if !utf8.ValidString(plaintext) {
		return "", types.InvalidArgumentError{Argument: "plaintext", Reason: "must be valid UTF-8"}
	}

	var (
		e   types.Envelope
		key []byte
		err error
	)

	if n := c.kdf.SaltSize(); n > 0 {
		e.Salt = make([]byte, n)
		if _, err = io.ReadFull(c.random, e.Salt); err != nil {
			return "", err
		}
	}

	if key, err = DeriveKey([]byte(passphrase), e.Salt, c.kdf); err != nil {
		return "", err
	}
	defer wipe(key)

	if e.IV, e.CT, err = EncryptWith([]byte(plaintext), key, c.random); err != nil {
		return "", err
	}
	return e.String(), nil
}

// Decrypt opens an envelope produced by Encrypt with the same passphrase and
// key derivation settings.
func (c *TextCipher) Decrypt(envelope, passphrase string) (string, error) {
	if passphrase == "" {
		return "", types.InvalidArgumentError{Argument: "passphrase"}
	}
	if envelope == "" {
		return "", types.InvalidArgumentError{Argument: "envelope"}
	}

	var (
		e         types.Envelope
		key, data []byte
		err       error
	)

	if e, err = types.ParseEnvelope(envelope, c.kdf.SaltSize(), aes.BlockSize); err != nil {
		return "", err
	}

	if key, err = DeriveKey([]byte(passphrase), e.Salt, c.kdf); err != nil {
		return "", err
	}
	defer wipe(key)

	if data, err = DecryptWith(e.IV, e.CT, key); err != nil {
		return "", err
	}

	// A wrong key survives the padding check roughly once in 256 attempts.
	if !utf8.Valid(data) {
		wipe(data)
		return "", types.DecryptionFailedError{Err: errInvalidUTF8}
	}
	return string(data), nil
}

// Encrypt encrypts plaintext with the default, unsalted key derivation.
func Encrypt(plaintext, passphrase string) (string, error) {
	return New().Encrypt(plaintext, passphrase)
}

// Decrypt decrypts an envelope produced by Encrypt.
func Decrypt(envelope, passphrase string) (string, error) {
	return New().Decrypt(envelope, passphrase)
}
