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

	"github.com/notapipeline/extensions/pkg/config"
	"github.com/notapipeline/extensions/pkg/types"
)

var (
	saveCipherFlags types.CipherCmd
	saveWeekFlags   types.WeekCmd
	saveCopyFlags   struct{ recursive, overwrite, clean bool }
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the extensions configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var configSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Write the current settings to the config file",
	Long: `Write the current settings to the config file.

	The settings already loaded from the config file and the environment are
	merged with the flags given here and written back. The passphrase is
	never written to disk, keep it in the environment or a secret store.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := cfg.MergeCipherCmd(saveCipherFlags); err != nil {
			fatal("%s", err)
			return
		}
		cfg.MergeWeekCmd(saveWeekFlags)
		if _, err := cfg.Weekday(); err != nil {
			fatal("%s", err)
			return
		}

		if cmd.Flags().Changed("recursive") {
			cfg.Copy.IncludeSubdirectories = saveCopyFlags.recursive
		}
		if cmd.Flags().Changed("overwrite") {
			cfg.Copy.OverwriteExisting = saveCopyFlags.overwrite
		}
		if cmd.Flags().Changed("clean") {
			cfg.Copy.CleanTargetDirectory = saveCopyFlags.clean
		}

		if err := cfg.Save(); err != nil {
			fatal("unable to save configuration: %s", err)
			return
		}
		logs.Infof("configuration saved to %s", config.ConfigPath())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSaveCmd)

	flags := configSaveCmd.Flags()
	flags.StringVar(&saveCipherFlags.KDF, "kdf", "", "key derivation function: sha512, pbkdf2 or argon2id")
	flags.IntVar(&saveCipherFlags.Iterations, "iterations", 0, "key derivation iterations (pbkdf2, argon2id)")
	flags.IntVar(&saveCipherFlags.Memory, "memory", 0, "argon2id memory in KiB")
	flags.IntVar(&saveCipherFlags.Parallelism, "parallelism", 0, "argon2id parallelism")
	flags.StringVar(&saveWeekFlags.Format, "week-format", "", "default week label format")
	flags.StringVar(&saveWeekFlags.FirstWeekday, "first-weekday", "", "first day of the week")
	flags.BoolVar(&saveCopyFlags.recursive, "recursive", false, "copy subdirectories by default")
	flags.BoolVar(&saveCopyFlags.overwrite, "overwrite", false, "replace existing files by default")
	flags.BoolVar(&saveCopyFlags.clean, "clean", false, "empty copy targets by default")
}
