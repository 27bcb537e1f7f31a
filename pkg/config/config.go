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
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v2"

	"github.com/notapipeline/extensions/pkg/dates"
	"github.com/notapipeline/extensions/pkg/files"
	"github.com/notapipeline/extensions/pkg/types"
)

// These functions are referenced as variables to enable them to
// be mocked in tests
var (
	ConfigPath func() string = getConfigPath
)

// DefaultFirstWeekday is used when no first day of the week is configured
const DefaultFirstWeekday = "monday"

type Config struct {
	Passphrase string        `yaml:"passphrase,omitempty" env:"EXT_PASSPHRASE"`
	KDF        types.KDFInfo `yaml:",inline"`

	WeekFormat   string `yaml:"weekFormat,omitempty" env:"EXT_WEEK_FORMAT"`
	FirstWeekday string `yaml:"firstWeekday,omitempty" env:"EXT_FIRST_WEEKDAY"`

	Copy files.CopyOptions `yaml:"copy"`

	Debug bool `yaml:"debug,omitempty" env:"EXT_DEBUG"`
	Quiet bool `yaml:"quiet,omitempty" env:"EXT_QUIET"`
}

func New() *Config {
	return &Config{}
}

// Load the config file from user local config directory
//
// The config file will be loaded from ~/.config/extensions/config.yaml if it
// exists and then the environment will be checked for overrides.
//
// Users are expected to call the Merge functions to override the config with
// command line options.
func (c *Config) Load() (err error) {
	if err = c.loadYaml(); err != nil {
		return
	}
	if err = c.loadEnv(); err != nil {
		return
	}
	c.setDefaults()
	return
}

func (c *Config) loadYaml() (err error) {
	var (
		cp       string = ConfigPath()
		yamlFile []byte
	)

	if _, err = os.Stat(cp); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if yamlFile, err = os.ReadFile(cp); err != nil {
		return err
	}
	return yaml.Unmarshal(yamlFile, c)
}

func (c *Config) loadEnv() (err error) {
	return env.Parse(c)
}

func (c *Config) setDefaults() {
	if c.WeekFormat == "" {
		c.WeekFormat = dates.DefaultWeekFormat
	}
	if c.FirstWeekday == "" {
		c.FirstWeekday = DefaultFirstWeekday
	}
}

func (c *Config) MergeRootCmd(cmd types.RootCmd) {
	if cmd.Debug {
		c.Debug = cmd.Debug
	}
	if cmd.Quiet {
		c.Quiet = cmd.Quiet
	}
}

func (c *Config) MergeCipherCmd(cmd types.CipherCmd) error {
	if cmd.Passphrase != "" {
		c.Passphrase = cmd.Passphrase
	}
	if cmd.KDF != "" {
		kdf, err := types.ParseKDFType(cmd.KDF)
		if err != nil {
			return err
		}
		c.KDF.Type = kdf
	}
	if cmd.Iterations != 0 {
		c.KDF.Iterations = cmd.Iterations
	}
	if cmd.Memory != 0 {
		c.KDF.Memory = cmd.Memory
	}
	if cmd.Parallelism != 0 {
		c.KDF.Parallelism = cmd.Parallelism
	}
	return nil
}

func (c *Config) MergeWeekCmd(cmd types.WeekCmd) {
	if cmd.Format != "" {
		c.WeekFormat = cmd.Format
	}
	if cmd.FirstWeekday != "" {
		c.FirstWeekday = cmd.FirstWeekday
	}
}

// Weekday returns the configured first day of the week
func (c *Config) Weekday() (time.Weekday, error) {
	if c.FirstWeekday == "" {
		return time.Monday, nil
	}
	return dates.ParseWeekday(c.FirstWeekday)
}

// Save writes the config file. The passphrase is never persisted.
func (c *Config) Save() (err error) {
	var (
		data []byte
		out  Config = *c
	)
	out.Passphrase = ""

	if data, err = yaml.Marshal(&out); err != nil {
		return err
	}

	var cp string = ConfigPath()
	if err = os.MkdirAll(filepath.Dir(cp), 0700); err != nil {
		return err
	}
	return os.WriteFile(cp, data, 0600)
}

func getConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "extensions", "config.yaml")
}
