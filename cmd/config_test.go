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
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notapipeline/extensions/pkg/config"
	"github.com/notapipeline/extensions/pkg/types"
)

func TestConfigSaveCmd(t *testing.T) {
	teardownSuite := setupSuite(t, "kdf: pbkdf2\niterations: 1000\n")
	defer teardownSuite(t)
	t.Setenv("EXT_PASSPHRASE", "from-env")

	_, stderr, err := execute(t, "", "config", "save",
		"--kdf", "argon2id", "--memory", "128", "--parallelism", "2",
		"--first-weekday", "sunday", "--recursive")
	require.NoError(t, err)
	assert.Empty(t, fatalMessage)
	assert.Contains(t, stderr, "[info] configuration saved to "+config.ConfigPath())

	data, err := os.ReadFile(config.ConfigPath())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "from-env")

	os.Unsetenv("EXT_PASSPHRASE")
	c := config.New()
	require.NoError(t, c.Load())
	assert.Equal(t, types.KDFInfo{
		Type:        types.KDFTypeArgon2id,
		Iterations:  1000,
		Memory:      128,
		Parallelism: 2,
	}, c.KDF)
	assert.True(t, c.Copy.IncludeSubdirectories)
	day, err := c.Weekday()
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, day)

	// every command still starts against the saved file
	out, _, err := execute(t, "", "week", "2024-01-01")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-W01")
}

func TestConfigSaveCmdRejectsInvalidSettings(t *testing.T) {
	teardownSuite := setupSuite(t, "weekFormat: cc\n")
	defer teardownSuite(t)

	for _, args := range [][]string{
		{"config", "save", "--kdf", "rot13"},
		{"config", "save", "--first-weekday", "someday"},
	} {
		fatalMessage = ""
		_, _, err := execute(t, "", args...)
		require.NoError(t, err)
		assert.NotEmpty(t, fatalMessage, strings.Join(args, " "))

		data, err := os.ReadFile(config.ConfigPath())
		require.NoError(t, err)
		assert.Equal(t, "weekFormat: cc\n", string(data))
	}
}
