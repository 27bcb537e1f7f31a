/*
Package crypto provides the passphrase based text cipher used throughout the
extensions module.

Text is encrypted with AES-192 in CBC mode with PKCS#7 padding. The key is
derived from the passphrase on every call and a fresh random IV is generated
for every encryption. The result is a single base64 envelope:

	base64( IV || ciphertext )

Nothing else is needed to decrypt it besides the passphrase.

	package main

	import (
		"fmt"

		"github.com/notapipeline/extensions/pkg/crypto"
	)

	func main() {
		envelope, err := crypto.Encrypt("Hello World!", "secret-string-to-encrypt")
		if err != nil {
			panic(err)
		}

		plain, err := crypto.Decrypt(envelope, "secret-string-to-encrypt")
		if err != nil {
			panic(err)
		}
		fmt.Println(plain) // "Hello World!"
	}

The default key derivation takes the first 24 bytes of an unsalted SHA-512
digest of the passphrase. This matches envelopes produced by earlier
implementations but offers no protection against dictionary attacks. A
TextCipher built with WithKDF and types.KDFTypePBKDF2 or types.KDFTypeArgon2id
uses a random salt instead, which is carried at the front of the envelope:

	base64( salt || IV || ciphertext )

Such envelopes can only be opened by a TextCipher configured with the same
KDF settings.

Keys are overwritten with zeros once a call completes. Callers that keep
passphrases in memory for longer should hold them in a sealed enclave, see
package cache.
*/
package crypto
