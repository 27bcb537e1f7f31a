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
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/notapipeline/extensions/pkg/cache"
	"github.com/notapipeline/extensions/pkg/tools"
	"github.com/notapipeline/extensions/pkg/types"
)

var cipherFlags types.CipherCmd

var lookupPassphrase func(explicit string, interactive bool) ([]byte, error) = tools.LookupPassphrase

type encryptResult struct {
	Envelope string `json:"envelope"`
	KDF      string `json:"kdf"`
}

func (r encryptResult) String() string {
	return r.Envelope
}

type decryptResult struct {
	Plaintext string `json:"plaintext"`
}

func (r decryptResult) String() string {
	return r.Plaintext
}

// encryptCmd represents the encrypt command
var encryptCmd = &cobra.Command{
	Use:   "encrypt [text]",
	Short: "Encrypt a text with a passphrase",
	Long: `Encrypt a text with a passphrase and print the result as base64.

	The text is taken from the arguments or, if none are given, from stdin.

	The passphrase is taken from --passphrase, the config file, the
	EXT_PASSPHRASE environment variable, kwallet or the secret service, in
	that order. If none of these hold a passphrase you will be prompted for one
	using GPG Pinentry if available, otherwise from stdin.

	By default the key is the first 24 bytes of the SHA-512 digest of the
	passphrase and the output is compatible with other implementations of the
	same scheme. Use --kdf pbkdf2 or --kdf argon2id for a salted key
	derivation; the salt is then carried at the front of the output and the
	same --kdf must be given to decrypt.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			text     string
			envelope string
			c        *cache.SecretCache
			err      error
		)

		if text, err = input(cmd, args); err != nil {
			fatal("unable to read input: %q", err)
			return
		}

		if c, err = secretCache(); err != nil {
			fatal("%s", err)
			return
		}

		if envelope, err = c.Encrypt(text); err != nil {
			fatal("unable to encrypt: %s", err)
			return
		}

		logs.Debugf("encrypted %d characters using %s", len([]rune(text)), c.KDF().Type)
		if err = output(cmd, encryptResult{Envelope: envelope, KDF: c.KDF().Type.String()}); err != nil {
			fatal("%s", err)
		}
	},
}

// decryptCmd represents the decrypt command
var decryptCmd = &cobra.Command{
	Use:   "decrypt [envelope]",
	Short: "Decrypt a text encrypted with a passphrase",
	Long: `Decrypt the base64 output of the encrypt command.

	The passphrase is found the same way as for encrypt. A wrong passphrase or
	a corrupted input is reported as a failed decryption and no text is
	printed.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			envelope  string
			plaintext string
			c         *cache.SecretCache
			err       error
		)

		if envelope, err = input(cmd, args); err != nil {
			fatal("unable to read input: %q", err)
			return
		}

		if c, err = secretCache(); err != nil {
			fatal("%s", err)
			return
		}

		if plaintext, err = c.Decrypt(envelope); err != nil {
			fatal("unable to decrypt: %s", err)
			return
		}

		if err = output(cmd, decryptResult{Plaintext: plaintext}); err != nil {
			fatal("%s", err)
		}
	},
}

// secretCache seals the passphrase for this invocation
func secretCache() (*cache.SecretCache, error) {
	var (
		passphrase []byte
		err        error
	)

	if err = cfg.MergeCipherCmd(cipherFlags); err != nil {
		return nil, err
	}

	if passphrase, err = lookupPassphrase(cfg.Passphrase, !cipherFlags.NoPrompt); err != nil {
		return nil, err
	}
	return cache.Instance(passphrase, cfg.KDF)
}

func init() {
	for _, c := range []*cobra.Command{encryptCmd, decryptCmd} {
		rootCmd.AddCommand(c)
		c.Flags().StringVarP(&cipherFlags.Passphrase, "passphrase", "p", "", "passphrase (prefer the config file, environment or a secret store)")
		c.Flags().StringVar(&cipherFlags.KDF, "kdf", "", "key derivation function: sha512, pbkdf2 or argon2id")
		c.Flags().IntVar(&cipherFlags.Iterations, "iterations", 0, "key derivation iterations (pbkdf2, argon2id)")
		c.Flags().IntVar(&cipherFlags.Memory, "memory", 0, "argon2id memory in KiB")
		c.Flags().IntVar(&cipherFlags.Parallelism, "parallelism", 0, "argon2id parallelism")
		c.Flags().BoolVar(&cipherFlags.NoPrompt, "no-prompt", false, "never prompt for a passphrase")
	}
}
