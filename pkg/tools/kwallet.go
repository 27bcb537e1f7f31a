/*
 *   Copyright 2022 Martin Proffitt <mproffitt@choclab.net>
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
package tools

import (
	"fmt"
	"os"

	"r00t2.io/gokwallet"
)

// WalletFolder and WalletMap locate secrets in kwallet and the secret service
const (
	WalletFolder = "Passwords"
	WalletMap    = "extensions"
)

var getSecretFromKWallet func(what string) (string, error) = kwalletSecret

// Gets a secret value from kwallet
func kwalletSecret(what string) (string, error) {
	if os.Getenv("EXT_USE_LIBSECRET") != "" {
		return "", fmt.Errorf("skipping kwallet")
	}

	var (
		err error
		r   *gokwallet.RecurseOpts = gokwallet.DefaultRecurseOpts
		wm  *gokwallet.WalletManager
	)

	r.AllWalletItems = true
	if wm, err = gokwallet.NewWalletManager(r, "Extensions"); err != nil {
		return "", err
	}

	for _, v := range wm.Wallets {
		if f, ok := v.Folders[WalletFolder]; ok {
			if m, ok := f.Maps[WalletMap]; ok {
				if p, ok := m.Value[what]; ok {
					return p, nil
				}
			}
		}
	}
	return "", nil
}
