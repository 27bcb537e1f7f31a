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
	"fmt"
	"strings"
)

// KDFType - the function used to turn a passphrase into a cipher key
type KDFType int

// String - convert a KDFType to its configuration name
func (t KDFType) String() string {
	switch t {
	case KDFTypeSHA512:
		return "sha512"
	case KDFTypePBKDF2:
		return "pbkdf2"
	case KDFTypeArgon2id:
		return "argon2id"
	}
	return fmt.Sprintf("KDFType(%d)", t)
}

// Salted - returns true if keys derived with this type require a salt
func (t KDFType) Salted() bool {
	return t == KDFTypePBKDF2 || t == KDFTypeArgon2id
}

// UnmarshalText - accepts the configuration name of a KDF
func (t *KDFType) UnmarshalText(data []byte) (err error) {
	*t, err = ParseKDFType(string(data))
	return
}

// MarshalText - convert a KDFType to its configuration name
func (t KDFType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// ParseKDFType converts a name such as "pbkdf2" into a KDFType. An empty
// string selects the default.
func ParseKDFType(name string) (KDFType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sha512":
		return KDFTypeSHA512, nil
	case "pbkdf2":
		return KDFTypePBKDF2, nil
	case "argon2id", "argon2":
		return KDFTypeArgon2id, nil
	}
	return KDFTypeSHA512, InvalidArgumentError{
		Argument: "kdf",
		Reason:   fmt.Sprintf("unknown key derivation function %q", name),
	}
}

// KDFInfo describes how a passphrase is stretched into a key.
//
// Iterations, Memory (KiB) and Parallelism are ignored by KDFTypeSHA512. Zero
// values are replaced with the package defaults by WithDefaults.
type KDFInfo struct {
	Type        KDFType `json:"kdf" yaml:"kdf" env:"EXT_KDF"`
	Iterations  int     `json:"kdfIterations" yaml:"iterations" env:"EXT_KDF_ITERATIONS"`
	Memory      int     `json:"kdfMemory,omitempty" yaml:"memory,omitempty" env:"EXT_KDF_MEMORY"`
	Parallelism int     `json:"kdfParallelism,omitempty" yaml:"parallelism,omitempty" env:"EXT_KDF_PARALLELISM"`
}

// WithDefaults returns a copy of k with unset tuning parameters filled in
func (k KDFInfo) WithDefaults() KDFInfo {
	switch k.Type {
	case KDFTypePBKDF2:
		if k.Iterations <= 0 {
			k.Iterations = DefaultPBKDF2Iterations
		}
	case KDFTypeArgon2id:
		if k.Iterations <= 0 {
			k.Iterations = DefaultArgon2Iterations
		}
		if k.Memory <= 0 {
			k.Memory = DefaultArgon2Memory
		}
		if k.Parallelism <= 0 {
			k.Parallelism = DefaultArgon2Parallelism
		}
	}
	return k
}

// SaltSize - number of salt bytes carried at the front of an envelope
func (k KDFInfo) SaltSize() int {
	if k.Type.Salted() {
		return SaltSize
	}
	return 0
}
