// Copyright (c) 2019, Daniel Martí <mvdan@mvdan.cc>
// This file is covered by the license at https://github.com/mvdan/bitw/blob/master/LICENSE
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha512"
	"fmt"
	"io"
	"math"

	"github.com/notapipeline/extensions/pkg/types"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

// DeriveKey stretches a passphrase into a types.KeySize byte AES key.
//
// KDFTypeSHA512 takes the first 24 bytes of an unsalted SHA-512 digest and
// ignores salt. It is kept for envelope compatibility and is weak against
// offline guessing; the salted functions should be preferred for new data.
func DeriveKey(passphrase, salt []byte, kdf types.KDFInfo) ([]byte, error) {
	kdf = kdf.WithDefaults()
	switch kdf.Type {
	case types.KDFTypeSHA512:
		var digest [sha512.Size]byte = sha512.Sum512(passphrase)
		defer wipe(digest[:])
		key := make([]byte, types.KeySize)
		copy(key, digest[:types.KeySize])
		return key, nil
	case types.KDFTypePBKDF2:
		if len(salt) == 0 {
			return nil, types.InvalidArgumentError{Argument: "salt", Reason: "pbkdf2 requires a salt"}
		}
		return pbkdf2.Key(passphrase, salt, kdf.Iterations, types.KeySize, sha512.New), nil
	case types.KDFTypeArgon2id:
		if len(salt) == 0 {
			return nil, types.InvalidArgumentError{Argument: "salt", Reason: "argon2id requires a salt"}
		}
		for _, limit := range []struct {
			name  string
			value int64
			max   int64
		}{
			{"iterations", int64(kdf.Iterations), math.MaxUint32},
			{"memory", int64(kdf.Memory), math.MaxUint32},
			{"parallelism", int64(kdf.Parallelism), math.MaxUint8},
		} {
			if limit.value > limit.max {
				return nil, types.InvalidArgumentError{
					Argument: limit.name,
					Reason:   fmt.Sprintf("must not exceed %d", limit.max),
				}
			}
		}
		return argon2.IDKey(passphrase, salt, uint32(kdf.Iterations),
			uint32(kdf.Memory), uint8(kdf.Parallelism), types.KeySize), nil
	default:
		return nil, types.InvalidArgumentError{
			Argument: "kdf",
			Reason:   fmt.Sprintf("unsupported KDF type %d", kdf.Type),
		}
	}
}

// EncryptWith pads data and encrypts it with AES-CBC under key using a fresh
// IV read from random.
func EncryptWith(data, key []byte, random io.Reader) (iv, ct []byte, err error) {
	var block cipher.Block
	if block, err = aes.NewCipher(key); err != nil {
		return nil, nil, err
	}

	if data, err = PadPKCS7(data, aes.BlockSize); err != nil {
		return nil, nil, err
	}
	defer wipe(data)

	// Generate the IV
	iv = make([]byte, aes.BlockSize)
	if _, err = io.ReadFull(random, iv); err != nil {
		return nil, nil, fmt.Errorf("encrypt: unable to generate IV: %w", err)
	}

	ct = make([]byte, len(data))
	mode := cipher.NewCBCEncrypter(block, iv)
	mode.CryptBlocks(ct, data)
	return iv, ct, nil
}

// DecryptWith reverses EncryptWith. A padding failure after decryption is
// reported as types.DecryptionFailedError.
func DecryptWith(iv, ct, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	if len(iv) != aes.BlockSize {
		return nil, types.MalformedInputError{
			Reason: fmt.Sprintf("IV must be %d bytes, got %d", aes.BlockSize, len(iv)),
		}
	}
	if len(ct) == 0 || len(ct)%aes.BlockSize != 0 {
		return nil, types.MalformedInputError{
			Reason: fmt.Sprintf("ciphertext length %d is not a positive multiple of %d", len(ct), aes.BlockSize),
		}
	}

	mode := cipher.NewCBCDecrypter(block, iv)
	dst := make([]byte, len(ct))
	mode.CryptBlocks(dst, ct)

	var out []byte
	if out, err = UnpadPKCS7(dst, aes.BlockSize); err != nil {
		wipe(dst)
		return nil, types.DecryptionFailedError{Err: err}
	}
	return out, nil
}

func UnpadPKCS7(src []byte, size int) ([]byte, error) {
	if len(src) == 0 || len(src)%size != 0 {
		return nil, fmt.Errorf("expected PKCS7 padding for block size %d, but have %d bytes", size, len(src))
	}
	n := int(src[len(src)-1])
	if n == 0 || n > size {
		return nil, fmt.Errorf("invalid PKCS7 padding length %d for block size %d", n, size)
	}
	for _, b := range src[len(src)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("invalid PKCS7 padding")
		}
	}
	return src[:len(src)-n], nil
}

func PadPKCS7(src []byte, size int) ([]byte, error) {
	if size <= 0 || size > math.MaxUint8 {
		return nil, fmt.Errorf("cannot pad to a block size of %d", size)
	}
	// Note that we always pad, even if rem==0. This is because unpad must
	// always remove at least one byte to be unambiguous.
	rem := len(src) % size
	n := size - rem
	padded := make([]byte, len(src)+n)
	copy(padded, src)
	for i := len(src); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded, nil
}

// wipe overwrites b with zeros
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
