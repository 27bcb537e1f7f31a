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
package text

import "github.com/notapipeline/extensions/pkg/crypto"

// Encrypt encrypts s under passphrase, see crypto.Encrypt
func Encrypt(s, passphrase string) (string, error) {
	return crypto.Encrypt(s, passphrase)
}

// Decrypt decrypts an envelope produced by Encrypt
func Decrypt(envelope, passphrase string) (string, error) {
	return crypto.Decrypt(envelope, passphrase)
}
