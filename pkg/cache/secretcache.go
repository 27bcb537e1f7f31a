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
package cache

import (
	"fmt"
	"sync"

	"github.com/awnumar/memguard"
	"github.com/notapipeline/extensions/pkg/crypto"
	"github.com/notapipeline/extensions/pkg/types"
)

// SecretCache holds the passphrase sealed in a memguard enclave between the
// point it is looked up and the point it is used.
//
// Initialization of this object is done in a singleton fashion so the
// passphrase exists once in memory. The plaintext passphrase handed to
// Instance is wiped once it has been sealed.
type SecretCache struct {
	cipher     *crypto.TextCipher
	passphrase *memguard.Enclave
}

var (
	secretCache *SecretCache
	lock        = &sync.Mutex{}
)

// Instance gets the current instance or creates a new secret cache object
// sealing the given passphrase.
var Instance = instance

func instance(passphrase []byte, kdf types.KDFInfo) (*SecretCache, error) {
	lock.Lock()
	defer lock.Unlock()
	if secretCache != nil {
		return secretCache, nil
	}

	if len(passphrase) == 0 {
		return nil, types.InvalidArgumentError{Argument: "passphrase"}
	}

	secretCache = &SecretCache{
		cipher:     crypto.New(crypto.WithKDF(kdf)),
		passphrase: memguard.NewEnclave(passphrase),
	}
	return secretCache, nil
}

// Reset the secret cache
func Reset() {
	lock.Lock()
	defer lock.Unlock()
	secretCache = nil
}

// KDF returns the key derivation settings with defaults applied
func (c *SecretCache) KDF() types.KDFInfo {
	return c.cipher.KDF()
}

// Encrypt seals plaintext under the cached passphrase.
//
// This is a convenience method that wraps crypto.TextCipher.Encrypt.
func (c *SecretCache) Encrypt(plaintext string) (string, error) {
	buf, err := c.passphrase.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open passphrase enclave: %w", err)
	}
	defer buf.Destroy()
	return c.cipher.Encrypt(plaintext, buf.String())
}

// Decrypt opens an envelope with the cached passphrase.
//
// This is a convenience method that wraps crypto.TextCipher.Decrypt.
func (c *SecretCache) Decrypt(envelope string) (string, error) {
	buf, err := c.passphrase.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open passphrase enclave: %w", err)
	}
	defer buf.Destroy()
	return c.cipher.Decrypt(envelope, buf.String())
}
