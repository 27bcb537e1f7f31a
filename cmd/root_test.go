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
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/notapipeline/extensions/pkg/cache"
	"github.com/notapipeline/extensions/pkg/config"
)

var fatalMessage string

func setupSuite(t *testing.T, configFile string) func(t *testing.T) {
	t.Log("Setting up cmd suite")
	tempDir := t.TempDir()
	ocp := config.ConfigPath
	config.ConfigPath = func() string {
		return filepath.Join(tempDir, "config.yaml")
	}
	if err := os.WriteFile(config.ConfigPath(), []byte(configFile), 0644); err != nil {
		t.Fatal(err)
	}

	for _, e := range os.Environ() {
		if name, _, _ := strings.Cut(e, "="); strings.HasPrefix(name, "EXT_") {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}

	color.NoColor = true
	cache.Reset()
	fatalMessage = ""

	of := fatal
	fatal = func(format string, v ...interface{}) {
		fatalMessage = fmt.Sprintf(format, v...)
	}

	return func(t *testing.T) {
		config.ConfigPath = ocp
		fatal = of
		cache.Reset()
	}
}

// execute runs the root command with args and returns what was written to
// stdout and stderr
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace([]string{})
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestRootCmd(t *testing.T) {
	teardownSuite := setupSuite(t, "")
	defer teardownSuite(t)

	out, _, err := execute(t, "")
	if err != nil {
		t.Fatalf("Expected nil error but got %v", err)
	}

	for _, expected := range []string{"Text, date and directory helpers", "encrypt", "week", "dir", "text"} {
		if !strings.Contains(out, expected) {
			t.Errorf("Expected output to contain %q but got %q", expected, out)
		}
	}
}

func TestRootCmdThrowsErrorOnInvalidConfig(t *testing.T) {
	teardownSuite := setupSuite(t, "kdf: [unterminated")
	defer teardownSuite(t)

	if _, _, err := execute(t, "", "week"); err == nil {
		t.Fatal("Expected error, got nil")
	}
}

func TestRootCmdConfigFlag(t *testing.T) {
	teardownSuite := setupSuite(t, "")
	defer teardownSuite(t)

	path := filepath.Join(t.TempDir(), "other.yaml")
	if err := os.WriteFile(path, []byte("weekFormat: cc/yyyy\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "", "--config", path, "week", "2024-01-01")
	if err != nil {
		t.Fatalf("Expected nil error but got %v", err)
	}
	if !strings.Contains(out, "01/2024") {
		t.Errorf("Expected output to contain %q but got %q", "01/2024", out)
	}
}

func TestRootCmdDebugLogging(t *testing.T) {
	teardownSuite := setupSuite(t, "")
	defer teardownSuite(t)

	_, stderr, err := execute(t, "", "--debug", "week", "2024-01-01")
	if err != nil {
		t.Fatalf("Expected nil error but got %v", err)
	}
	if !strings.Contains(stderr, "[debug] loaded configuration from") {
		t.Errorf("Expected debug output but got %q", stderr)
	}
}
