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
package types

// RootCmd carries the persistent flags shared by every command
type RootCmd struct {
	ConfigFile string
	Debug      bool
	Quiet      bool
	JSON       bool
}

// CipherCmd carries the flags of the encrypt and decrypt commands. Zero
// values leave the configured setting untouched.
type CipherCmd struct {
	Passphrase  string
	KDF         string
	Iterations  int
	Memory      int
	Parallelism int
	NoPrompt    bool
}

type WeekCmd struct {
	Format       string
	FirstWeekday string
}
