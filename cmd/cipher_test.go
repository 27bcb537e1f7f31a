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
	"encoding/json"
	"strings"
	"testing"

	"github.com/notapipeline/extensions/pkg/cache"
	"github.com/notapipeline/extensions/pkg/tools"
)

const (
	knownEnvelope   = "AAAAAAAAAAAAAAAAAAAAAAihGLkp93MSnfbt5YM/8vo="
	knownPassphrase = "secret-string-to-encrypt"
)

func TestEncryptDecryptCmd(t *testing.T) {
	tests := []struct {
		name  string
		flags []string
	}{
		{
			name: "default kdf",
		},
		{
			name:  "pbkdf2",
			flags: []string{"--kdf", "pbkdf2", "--iterations", "1000"},
		},
		{
			name:  "argon2id",
			flags: []string{"--kdf", "argon2id", "--iterations", "1", "--memory", "1024", "--parallelism", "1"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			teardownSuite := setupSuite(t, "")
			defer teardownSuite(t)

			args := append([]string{"encrypt", "-p", knownPassphrase}, test.flags...)
			out, _, err := execute(t, "", append(args, "Hello", "World!")...)
			if err != nil || fatalMessage != "" {
				t.Fatalf("Expected nil error but got %v %q", err, fatalMessage)
			}
			envelope := strings.TrimSpace(out)

			cache.Reset()
			args = append([]string{"decrypt", "-p", knownPassphrase}, test.flags...)
			out, _, err = execute(t, "", append(args, envelope)...)
			if err != nil || fatalMessage != "" {
				t.Fatalf("Expected nil error but got %v %q", err, fatalMessage)
			}
			if out != "Hello World!\n" {
				t.Errorf("Expected %q but got %q", "Hello World!\n", out)
			}
		})
	}
}

func TestDecryptCmdKnownEnvelope(t *testing.T) {
	teardownSuite := setupSuite(t, "passphrase: "+knownPassphrase+"\n")
	defer teardownSuite(t)

	out, _, err := execute(t, knownEnvelope+"\n", "decrypt")
	if err != nil || fatalMessage != "" {
		t.Fatalf("Expected nil error but got %v %q", err, fatalMessage)
	}
	if out != "Hello World!\n" {
		t.Errorf("Expected %q but got %q", "Hello World!\n", out)
	}
}

func TestDecryptCmdFailures(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "wrong passphrase",
			args:     []string{"decrypt", "-p", "wrong-passphrase", knownEnvelope},
			expected: "unable to decrypt: decryption failed",
		},
		{
			name:     "not base64",
			args:     []string{"decrypt", "-p", knownPassphrase, "not-base64!!"},
			expected: "unable to decrypt: malformed input",
		},
		{
			name:     "unknown kdf",
			args:     []string{"decrypt", "-p", knownPassphrase, "--kdf", "rot13", knownEnvelope},
			expected: `invalid argument "kdf"`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			teardownSuite := setupSuite(t, "")
			defer teardownSuite(t)

			out, _, err := execute(t, "", test.args...)
			if err != nil {
				t.Fatalf("Expected nil error but got %v", err)
			}
			if !strings.HasPrefix(fatalMessage, test.expected) {
				t.Errorf("Expected fatal message to start with %q but got %q", test.expected, fatalMessage)
			}
			if out != "" {
				t.Errorf("Expected no output but got %q", out)
			}
		})
	}
}

func TestEncryptCmdJSON(t *testing.T) {
	teardownSuite := setupSuite(t, "kdf: pbkdf2\niterations: 1000\n")
	defer teardownSuite(t)

	out, _, err := execute(t, "", "--json", "encrypt", "-p", knownPassphrase, "Hello World!")
	if err != nil || fatalMessage != "" {
		t.Fatalf("Expected nil error but got %v %q", err, fatalMessage)
	}

	var result encryptResult
	if err = json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("Expected JSON output but got %q: %v", out, err)
	}
	if result.KDF != "pbkdf2" {
		t.Errorf("Expected kdf %q but got %q", "pbkdf2", result.KDF)
	}
	if result.Envelope == "" {
		t.Error("Expected an envelope")
	}
}

func TestEncryptCmdPassphraseLookup(t *testing.T) {
	teardownSuite := setupSuite(t, "")
	defer teardownSuite(t)

	olp := lookupPassphrase
	defer func() {
		lookupPassphrase = olp
	}()

	var interactive bool
	lookupPassphrase = func(explicit string, i bool) ([]byte, error) {
		interactive = i
		return nil, tools.ErrNoPassphrase
	}

	if _, _, err := execute(t, "", "encrypt", "--no-prompt", "text"); err != nil {
		t.Fatalf("Expected nil error but got %v", err)
	}
	if interactive {
		t.Error("Expected --no-prompt to disable prompting")
	}
	if fatalMessage != tools.ErrNoPassphrase.Error() {
		t.Errorf("Expected fatal message %q but got %q", tools.ErrNoPassphrase, fatalMessage)
	}

	lookupPassphrase = func(explicit string, i bool) ([]byte, error) {
		interactive = i
		return []byte("prompted"), nil
	}
	fatalMessage = ""
	out, _, err := execute(t, "", "encrypt", "text")
	if err != nil || fatalMessage != "" {
		t.Fatalf("Expected nil error but got %v %q", err, fatalMessage)
	}
	if !interactive {
		t.Error("Expected prompting to be allowed by default")
	}
	if strings.TrimSpace(out) == "" {
		t.Error("Expected an envelope")
	}
}
