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
package files

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/notapipeline/extensions/pkg/types"
)

// DefaultPattern matches every file name
const DefaultPattern = "*"

// referenced as a variable to enable it to be mocked in tests
var link func(oldname, newname string) error = os.Link

// CopyOptions controls the behaviour of Copy. A nil *CopyOptions copies the
// top level files only and never overwrites.
type CopyOptions struct {
	// IncludeSubdirectories copies the whole tree
	IncludeSubdirectories bool `yaml:"recursive"`

	// OverwriteExisting replaces files already present in the target
	OverwriteExisting bool `yaml:"overwrite"`

	// CleanTargetDirectory empties the target before copying
	CleanTargetDirectory bool `yaml:"clean"`
}

// RemoveBackOff is the retry policy used when removing directory entries.
// Only transient errors such as EBUSY or ENOTEMPTY are retried.
var RemoveBackOff = func() backoff.BackOff {
	return backoff.WithMaxRetries(backoff.NewConstantBackOff(50*time.Millisecond), 3)
}

// CleanFiles deletes the files inside dir and leaves every directory in
// place. When recursive is set the files of all subdirectories are deleted
// as well.
func CleanFiles(dir string, recursive bool) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if recursive {
				if err = CleanFiles(path, true); err != nil {
					return err
				}
			}
			continue
		}
		if err = os.Remove(path); err != nil {
			return err
		}
	}
	return nil
}

// Clean deletes everything inside dir, files and subdirectories, but not dir
// itself.
func Clean(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if err = removeAll(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func removeAll(path string) error {
	return backoff.Retry(func() error {
		err := os.RemoveAll(path)
		if err != nil && !transient(err) {
			return backoff.Permanent(err)
		}
		return err
	}, RemoveBackOff())
}

func transient(err error) bool {
	return errors.Is(err, syscall.EBUSY) || errors.Is(err, syscall.ENOTEMPTY)
}

// Copy copies the files in src to dst, creating dst if needed.
//
// Existing files are left alone and reported as fs.ErrExist unless
// OverwriteExisting is set. Each file is written under a temporary name and
// renamed into place so a failed copy never leaves a partial file behind.
func Copy(src, dst string, opts *CopyOptions) (err error) {
	if opts == nil {
		opts = &CopyOptions{}
	}

	if err = checkCopyPaths(src, dst, opts); err != nil {
		return err
	}

	var info fs.FileInfo
	if info, err = os.Stat(src); err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("copy %s: not a directory", src)
	}

	if err = os.MkdirAll(dst, info.Mode().Perm()|0o700); err != nil {
		return err
	}

	if opts.CleanTargetDirectory {
		if err = Clean(dst); err != nil {
			return err
		}
	}
	return copyTree(src, dst, opts)
}

func copyTree(src, dst string, opts *CopyOptions) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	var dirs []fs.DirEntry
	for _, entry := range entries {
		path := filepath.Join(src, entry.Name())
		if entry.IsDir() {
			dirs = append(dirs, entry)
			continue
		}

		// symlinks are followed; links to directories are skipped
		var info fs.FileInfo
		if info, err = os.Stat(path); err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			continue
		}

		if err = CopyFile(path, filepath.Join(dst, entry.Name()), opts.OverwriteExisting); err != nil {
			return err
		}
	}

	if !opts.IncludeSubdirectories {
		return nil
	}

	for _, dir := range dirs {
		var info fs.FileInfo
		if info, err = dir.Info(); err != nil {
			return err
		}
		next := filepath.Join(dst, dir.Name())
		if err = os.MkdirAll(next, info.Mode().Perm()|0o700); err != nil {
			return err
		}
		if err = copyTree(filepath.Join(src, dir.Name()), next, opts); err != nil {
			return err
		}
	}
	return nil
}

// checkCopyPaths refuses copies that would destroy or recurse into their own
// source.
func checkCopyPaths(src, dst string, opts *CopyOptions) error {
	var (
		absSrc, absDst string
		err            error
	)
	if absSrc, err = filepath.Abs(src); err != nil {
		return err
	}
	if absDst, err = filepath.Abs(dst); err != nil {
		return err
	}

	if absSrc == absDst {
		return types.InvalidArgumentError{Argument: "target", Reason: "source and target are the same directory"}
	}
	if opts.IncludeSubdirectories && strings.HasPrefix(absDst, absSrc+string(filepath.Separator)) {
		return types.InvalidArgumentError{Argument: "target", Reason: "target is inside the source tree"}
	}
	if opts.CleanTargetDirectory && strings.HasPrefix(absSrc, absDst+string(filepath.Separator)) {
		return types.InvalidArgumentError{Argument: "target", Reason: "cleaning the target would remove the source"}
	}
	return nil
}

// CopyFile copies a single regular file, keeping its permissions and
// modification time.
func CopyFile(src, dst string, overwrite bool) (err error) {
	if !overwrite {
		if _, err = os.Lstat(dst); err == nil {
			return fmt.Errorf("copy %s: %w", dst, fs.ErrExist)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	var (
		in   *os.File
		out  *os.File
		info fs.FileInfo
	)

	if in, err = os.Open(src); err != nil {
		return err
	}
	defer in.Close()

	if info, err = in.Stat(); err != nil {
		return err
	}

	tmp := filepath.Join(filepath.Dir(dst), fmt.Sprintf(".%s.%s.tmp", filepath.Base(dst), uuid.NewString()))
	if out, err = os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm()); err != nil {
		return err
	}
	defer func() {
		if err != nil {
			out.Close()
			os.Remove(tmp)
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return err
	}
	if err = out.Chmod(info.Mode().Perm()); err != nil {
		return err
	}
	if err = out.Close(); err != nil {
		return err
	}
	if err = os.Chtimes(tmp, info.ModTime(), info.ModTime()); err != nil {
		return err
	}
	if overwrite {
		return os.Rename(tmp, dst)
	}

	// a link fails rather than replacing a file created since the check above
	if err = link(tmp, dst); err != nil {
		if errors.Is(err, fs.ErrExist) {
			err = fmt.Errorf("copy %s: %w", dst, fs.ErrExist)
		}
		return err
	}
	return os.Remove(tmp)
}

// MoveFiles moves the files in src whose names match pattern into dst,
// creating dst if needed. Subdirectories are not descended into and existing
// targets are reported as fs.ErrExist. An empty pattern matches every file.
func MoveFiles(src, dst, pattern string) error {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return types.InvalidArgumentError{Argument: "pattern", Reason: err.Error()}
	}

	if err := os.MkdirAll(dst, 0o755); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ok, _ := filepath.Match(pattern, entry.Name()); !ok {
			continue
		}
		if err = moveFile(filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func moveFile(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("move %s: %w", dst, fs.ErrExist)
	}

	err := os.Rename(src, dst)
	if err == nil || !errors.Is(err, syscall.EXDEV) {
		return err
	}

	// different file systems
	if err = CopyFile(src, dst, true); err != nil {
		return err
	}
	return os.Remove(src)
}
