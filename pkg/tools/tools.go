/*
 *   Copyright 2022 Martin Proffitt <mproffitt@choclab.net>
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
package tools

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/twpayne/go-pinentry"
)

// PassphraseKey is the name the passphrase is stored under in the
// environment and the secret stores.
const PassphraseKey = "EXT_PASSPHRASE"

var (
	ErrAborted      = errors.New("aborted")
	ErrNoPassphrase = errors.New("no passphrase provided")
)

// ReadPassword reads a password from the user via STDIN
func ReadPassword(prompt string) ([]byte, error) {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	defer line.Close()
	var (
		password string
		err      error
	)
	if password, err = line.PasswordPrompt(prompt); err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return nil, ErrAborted
		}
		return nil, err
	}
	return []byte(password), nil
}

// ReadLine reads a line of text from the user via STDIN
func ReadLine(prompt string) ([]byte, error) {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	defer line.Close()
	var (
		text string
		err  error
	)
	if text, err = line.Prompt(prompt); err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return nil, ErrAborted
		}
		return nil, err
	}
	return []byte(text), nil
}

// GetSecret gets a secret from the environment or secrets store
func GetSecret(what string) string {
	var (
		value string
		err   error
		ok    bool
	)

	if value, ok = os.LookupEnv(what); ok && value != "" {
		return value
	}

	if value, err = getSecretFromKWallet(what); err == nil && value != "" {
		return value
	}

	if value, err = getSecretFromSecretsService(what); err == nil && value != "" {
		return value
	}
	return ""
}

// LookupPassphrase finds the passphrase to use for a cipher operation.
//
// Order is:
// 1. The explicit value (command flag or config file)
// 2. Environment
// 3. Secrets store
// 4. User input, when interactive
func LookupPassphrase(explicit string, interactive bool) ([]byte, error) {
	if explicit != "" {
		return []byte(explicit), nil
	}

	if s := GetSecret(PassphraseKey); s != "" {
		return []byte(s), nil
	}

	if !interactive {
		return nil, ErrNoPassphrase
	}
	return GetPassword("Passphrase", "Please enter the passphrase", "Passphrase: ")
}

// GetPassword gets a password from the user
//
// This is a mockable entry point for testing and wraps the password function.
var GetPassword func(title, description, prompt string) ([]byte, error) = password

// password asks the user for a password using pinentry if available and
// falls back to stdin if not.
func password(title, description, prompt string) ([]byte, error) {
	var (
		err         error
		client      *pinentry.Client
		password    string
		usePinentry bool = true
	)

	if client, err = GetPinentry(
		pinentry.WithBinaryNameFromGnuPGAgentConf(),
		pinentry.WithDesc(description),
		pinentry.WithGPGTTY(),
		pinentry.WithPrompt(prompt),
		pinentry.WithTitle(title),
	); err != nil {
		var b []byte
		if b, err = readPassword(prompt); err != nil {
			return nil, err
		}
		password = string(b)
		usePinentry = false
	}

	if usePinentry {
		defer client.Close()
		password, _, err = client.GetPIN()
		if pinentry.IsCancelled(err) {
			return nil, ErrAborted
		}
		if err != nil {
			return nil, fmt.Errorf("pinentry: %w", err)
		}
	}

	password = strings.TrimSpace(password)
	if password == "" {
		return nil, ErrNoPassphrase
	}
	return []byte(password), nil
}

// GetPinentry gets a pinentry client
//
// This is a mockable entry point for testing and wraps the pinentry client.
var GetPinentry func(options ...pinentry.ClientOption) (c *pinentry.Client, err error) = func(options ...pinentry.ClientOption) (c *pinentry.Client, err error) {
	return pinentry.NewClient(options...)
}

var readPassword func(prompt string) ([]byte, error) = func(prompt string) ([]byte, error) {
	return ReadPassword(prompt)
}
