/*
 * This file is part of hh-records-logic.
 *
 * hh-records-logic is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * hh-records-logic is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with hh-records-logic.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

package wallet

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/healthhub/hh-records-logic/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeySession_RequestAccounts(t *testing.T) {
	ctx := context.Background()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey)

	t.Run("hex key", func(t *testing.T) {
		session := NewKeySession(Config{Key: hexutil.Encode(crypto.FromECDSA(key))}, big.NewInt(1337))

		_, ok := session.CurrentAccount()
		assert.False(t, ok)

		accounts, err := session.RequestAccounts(ctx)

		require.NoError(t, err)
		assert.Equal(t, []pkg.Identity{pkg.Identity(address.Hex())}, accounts)
		current, ok := session.CurrentAccount()
		assert.True(t, ok)
		assert.Equal(t, accounts[0], current)
	})

	t.Run("keystore file", func(t *testing.T) {
		ks := keystore.NewKeyStore(t.TempDir(), keystore.LightScryptN, keystore.LightScryptP)
		account, err := ks.ImportECDSA(key, "secret")
		require.NoError(t, err)

		session := NewKeySession(Config{KeyFile: account.URL.Path, Passphrase: "secret"}, nil)
		accounts, err := session.RequestAccounts(ctx)

		require.NoError(t, err)
		assert.Equal(t, pkg.Identity(address.Hex()), accounts[0])
		assert.Equal(t, int64(1), session.ChainID().Int64())
	})

	t.Run("wrong passphrase", func(t *testing.T) {
		ks := keystore.NewKeyStore(t.TempDir(), keystore.LightScryptN, keystore.LightScryptP)
		account, err := ks.ImportECDSA(key, "secret")
		require.NoError(t, err)

		session := NewKeySession(Config{KeyFile: account.URL.Path, Passphrase: "guess"}, nil)
		_, err = session.RequestAccounts(ctx)

		assert.True(t, errors.Is(err, ErrLocked))
		assert.True(t, errors.Is(err, keystore.ErrDecrypt))
		_, ok := session.CurrentAccount()
		assert.False(t, ok)
	})

	t.Run("no key", func(t *testing.T) {
		_, err := NewKeySession(Config{}, nil).RequestAccounts(ctx)

		assert.True(t, errors.Is(err, ErrNoKey))
	})

	t.Run("invalid hex key", func(t *testing.T) {
		_, err := NewKeySession(Config{Key: "0xzz"}, nil).RequestAccounts(ctx)

		assert.Error(t, err)
	})
}

func TestKeySession_Transactor(t *testing.T) {
	ctx := context.Background()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey)
	session := NewKeySession(Config{Key: hexutil.Encode(crypto.FromECDSA(key))}, big.NewInt(1337))

	t.Run("locked session", func(t *testing.T) {
		_, err := session.Transactor(ctx, address)

		assert.Error(t, err)
	})

	_, err = session.RequestAccounts(ctx)
	require.NoError(t, err)

	t.Run("unlocked account", func(t *testing.T) {
		opts, err := session.Transactor(ctx, address)

		require.NoError(t, err)
		assert.Equal(t, address, opts.From)
		assert.NotNil(t, opts.Signer)
	})

	t.Run("other account", func(t *testing.T) {
		_, err := session.Transactor(ctx, common.HexToAddress("0x00000000000000000000000000000000000000a1"))

		assert.Error(t, err)
	})
}
