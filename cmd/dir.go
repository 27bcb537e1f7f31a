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
	"context"

	"github.com/spf13/cobra"

	"github.com/notapipeline/extensions/pkg/files"
	"github.com/notapipeline/extensions/pkg/try"
)

var (
	copyFlags      files.CopyOptions
	cleanRecursive bool
	movePattern    string
)

// dirCmd represents the dir command
var dirCmd = &cobra.Command{
	Use:   "dir",
	Short: "Copy, clean and move directory contents",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var dirCopyCmd = &cobra.Command{
	Use:   "copy <source> <target>",
	Short: "Copy the files of a directory",
	Long: `Copy the files of source into target, creating target if required.

	Existing files are never replaced unless --overwrite is given. With
	--recursive the whole tree is copied and with --clean the target is emptied
	first. Defaults for all three flags can be set in the "copy" section of
	the config file.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts files.CopyOptions = cfg.Copy
		if cmd.Flags().Changed("recursive") {
			opts.IncludeSubdirectories = copyFlags.IncludeSubdirectories
		}
		if cmd.Flags().Changed("overwrite") {
			opts.OverwriteExisting = copyFlags.OverwriteExisting
		}
		if cmd.Flags().Changed("clean") {
			opts.CleanTargetDirectory = copyFlags.CleanTargetDirectory
		}

		logs.Debugf("copying %s to %s with %+v", args[0], args[1], opts)
		if err := files.Copy(args[0], args[1], &opts); err != nil {
			return err
		}
		logs.Infof("copied %s to %s", args[0], args[1])
		return nil
	},
}

var dirCleanCmd = &cobra.Command{
	Use:   "clean <directory...>",
	Short: "Delete everything inside directories",
	Long: `Delete every file and subdirectory inside the given directories. The
	directories themselves are kept. Several directories are cleaned
	concurrently.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return forEachDir(cmd.Context(), args, func(dir string) error {
			if err := files.Clean(dir); err != nil {
				return err
			}
			logs.Infof("cleaned %s", dir)
			return nil
		})
	},
}

var dirCleanFilesCmd = &cobra.Command{
	Use:   "clean-files <directory...>",
	Short: "Delete the files inside directories",
	Long: `Delete the files inside the given directories and keep their
	subdirectories. With --recursive the files of every subdirectory are
	deleted too.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return forEachDir(cmd.Context(), args, func(dir string) error {
			if err := files.CleanFiles(dir, cleanRecursive); err != nil {
				return err
			}
			logs.Infof("cleaned files in %s", dir)
			return nil
		})
	},
}

// forEachDir runs fn for every directory concurrently and returns the first
// failure
func forEachDir(ctx context.Context, dirs []string, fn func(dir string) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	fns := make([]func(context.Context) error, 0, len(dirs))
	for _, dir := range dirs {
		dir := dir
		fns = append(fns, func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(dir)
		})
	}
	return try.All(ctx, fns...)
}

var dirMoveCmd = &cobra.Command{
	Use:   "move <source> <target>",
	Short: "Move matching files to another directory",
	Long: `Move the files of source matching --pattern into target, creating
	target if required. The pattern uses shell glob syntax and defaults to
	"*". Subdirectories are left in place and existing files in target are
	never replaced.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := files.MoveFiles(args[0], args[1], movePattern); err != nil {
			return err
		}
		logs.Infof("moved %s from %s to %s", movePattern, args[0], args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dirCmd)
	dirCmd.AddCommand(dirCopyCmd)
	dirCmd.AddCommand(dirCleanCmd)
	dirCmd.AddCommand(dirCleanFilesCmd)
	dirCmd.AddCommand(dirMoveCmd)

	dirCopyCmd.Flags().BoolVarP(&copyFlags.IncludeSubdirectories, "recursive", "r", false, "copy subdirectories")
	dirCopyCmd.Flags().BoolVar(&copyFlags.OverwriteExisting, "overwrite", false, "replace existing files")
	dirCopyCmd.Flags().BoolVar(&copyFlags.CleanTargetDirectory, "clean", false, "empty the target first")

	dirCleanFilesCmd.Flags().BoolVarP(&cleanRecursive, "recursive", "r", false, "delete files in subdirectories too")

	dirMoveCmd.Flags().StringVar(&movePattern, "pattern", files.DefaultPattern, "glob the file names must match")
}
