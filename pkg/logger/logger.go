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
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// Logger writes levelled, colourised messages to the console.
//
// Info messages are suppressed when Quiet is set and debug messages are only
// written when Debug is set. Warnings and errors are always written.
type Logger struct {
	Debug bool
	Quiet bool

	Out io.Writer
	Err io.Writer

	mu sync.Mutex
}

// New creates a logger writing to stdout and stderr
func New(debug, quiet bool) *Logger {
	return &Logger{
		Debug: debug,
		Quiet: quiet,
		Out:   os.Stdout,
		Err:   os.Stderr,
	}
}

func (l *Logger) Infof(msg string, args ...any) {
	if !l.Quiet {
		l.write(l.out(), color.GreenString("[info] "), msg, args...)
	}
}

func (l *Logger) Debugf(msg string, args ...any) {
	if l.Debug {
		l.write(l.out(), color.CyanString("[debug] "), msg, args...)
	}
}

func (l *Logger) Warnf(msg string, args ...any) {
	l.write(l.err(), color.YellowString("[warn] "), msg, args...)
}

func (l *Logger) Errorf(msg string, args ...any) {
	l.write(l.err(), color.RedString("[error] "), msg, args...)
}

func (l *Logger) write(w io.Writer, prefix, msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(w, prefix+msg+"\n", args...)
}

func (l *Logger) out() io.Writer {
	if l.Out == nil {
		return os.Stdout
	}
	return l.Out
}

func (l *Logger) err() io.Writer {
	if l.Err == nil {
		return os.Stderr
	}
	return l.Err
}
