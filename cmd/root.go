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

	"github.com/spf13/cobra"

	"github.com/notapipeline/extensions/pkg/config"
	"github.com/notapipeline/extensions/pkg/logger"
	"github.com/notapipeline/extensions/pkg/types"
)

var (
	rootFlags types.RootCmd
	cfg       *config.Config = config.New()
	logs      *logger.Logger = logger.New(false, false)
)

var fatal func(format string, v ...interface{}) = func(format string, v ...interface{}) {
	logs.Errorf(format, v...)
	os.Exit(1)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "extensions",
	Short: "Text, date and directory helpers",
	Long: `
Text, date and directory helpers

Encrypt and decrypt short texts with a passphrase, print ISO week numbers,
copy, clean and move directory contents and apply the common string
transformations from the command line.

Settings are read from $HOME/.config/extensions/config.yaml, then from EXT_*
environment variables, and finally from the command line.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SilenceErrors = true
	if err := rootCmd.Execute(); err != nil {
		fatal("%s", err)
	}
}

func init() {
	// These are consistent across all commands
	rootCmd.PersistentFlags().StringVar(&rootFlags.ConfigFile, "config", "", "config file (default is $HOME/.config/extensions/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&rootFlags.Debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&rootFlags.Quiet, "quiet", false, "disable informational logging")
	rootCmd.PersistentFlags().BoolVar(&rootFlags.JSON, "json", false, "print results as JSON")
}

func loadConfig(cmd *cobra.Command, args []string) (err error) {
	if rootFlags.ConfigFile != "" {
		var path string = rootFlags.ConfigFile
		config.ConfigPath = func() string {
			return path
		}
	}

	cfg = config.New()
	if err = cfg.Load(); err != nil {
		return err
	}
	cfg.MergeRootCmd(rootFlags)

	logs = logger.New(cfg.Debug, cfg.Quiet)
	logs.Err = cmd.ErrOrStderr()
	logs.Out = cmd.ErrOrStderr()
	logs.Debugf("loaded configuration from %s", config.ConfigPath())
	return nil
}
