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
	"crypto/ecdsa"
	"math/big"
	"os"
	"strings"
	"sync"

	"emperror.dev/errors"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/healthhub/hh-records-logic/pkg"
	"github.com/sirupsen/logrus"
)

// ErrNoKey is returned when neither a keystore file nor a raw key is configured.
const ErrNoKey = errors.Sentinel("no wallet key configured")

// ErrLocked is returned when the keystore file cannot be decrypted with the configured passphrase.
const ErrLocked = errors.Sentinel("wallet is locked")

type Config struct {
	// KeyFile is a go-ethereum keystore file, decrypted with Passphrase.
	KeyFile    string
	Passphrase string
	// Key is a hex encoded private key, used when KeyFile is empty.
	Key string
}

// KeySession is a pkg.WalletSession backed by a single local key. The key is unlocked on the first
// RequestAccounts, the way a browser wallet asks for approval once per session.
type KeySession struct {
	config  Config
	chainID *big.Int

	mutex   sync.Mutex
	key     *ecdsa.PrivateKey
	current pkg.Identity
}

func logger() *logrus.Entry {
	return logrus.StandardLogger().WithField("module", "wallet")
}

func NewKeySession(config Config, chainID *big.Int) *KeySession {
	if chainID == nil {
		chainID = big.NewInt(1)
	}
	return &KeySession{config: config, chainID: new(big.Int).Set(chainID)}
}

// RequestAccounts unlocks the key if needed and returns its address.
func (s *KeySession) RequestAccounts(ctx context.Context) ([]pkg.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.key == nil {
		key, err := s.unlock()
		if err != nil {
			return nil, err
		}
		s.key = key
		s.current = pkg.Identity(crypto.PubkeyToAddress(key.PublicKey).Hex())
		logger().Infof("wallet unlocked for %s", s.current)
	}
	return []pkg.Identity{s.current}, nil
}

func (s *KeySession) unlock() (*ecdsa.PrivateKey, error) {
	switch {
	case s.config.KeyFile != "":
		data, err := os.ReadFile(s.config.KeyFile)
		if err != nil {
			return nil, errors.WrapIf(err, "could not read keystore file")
		}
		key, err := keystore.DecryptKey(data, s.config.Passphrase)
		if err != nil {
			return nil, errors.Errorf("%w: %w", ErrLocked, err)
		}
		return key.PrivateKey, nil
	case s.config.Key != "":
		key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(s.config.Key), "0x"))
		if err != nil {
			return nil, errors.WrapIf(err, "invalid wallet key")
		}
		return key, nil
	}
	return nil, ErrNoKey
}

// CurrentAccount returns the unlocked account, if any.
func (s *KeySession) CurrentAccount() (pkg.Identity, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.current, s.current != ""
}

func (s *KeySession) ChainID() *big.Int {
	return new(big.Int).Set(s.chainID)
}

// Transactor returns signing options for from. The session must have been unlocked for that account.
func (s *KeySession) Transactor(ctx context.Context, from common.Address) (*bind.TransactOpts, error) {
	s.mutex.Lock()
	key := s.key
	s.mutex.Unlock()
	if key == nil {
		return nil, errors.Errorf("no unlocked account for %s", from.Hex())
	}
	if crypto.PubkeyToAddress(key.PublicKey) != from {
		return nil, errors.Errorf("account %s is not held by this wallet", from.Hex())
	}
	opts, err := bind.NewKeyedTransactorWithChainID(key, s.chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	return opts, nil
}
