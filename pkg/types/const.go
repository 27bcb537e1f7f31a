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

// Key derivation functions understood by the text cipher.
//
// KDFTypeSHA512 is the compatible default and produces envelopes without a
// salt. The salted functions prepend SaltSize bytes to the envelope.
const (
	KDFTypeSHA512   KDFType = 0
	KDFTypePBKDF2   KDFType = 1
	KDFTypeArgon2id KDFType = 2
)

const (
	// KeySize selects AES-192
	KeySize  = 24
	SaltSize = 16

	DefaultPBKDF2Iterations  = 600000
	DefaultArgon2Iterations  = 3
	DefaultArgon2Memory      = 64 * 1024
	DefaultArgon2Parallelism = 4
)
