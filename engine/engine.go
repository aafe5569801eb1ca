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

package engine

import (
	"context"
	"time"

	"emperror.dev/errors"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/healthhub/hh-records-logic/api"
	"github.com/healthhub/hh-records-logic/chain"
	"github.com/healthhub/hh-records-logic/pinning"
	"github.com/healthhub/hh-records-logic/pkg"
	"github.com/healthhub/hh-records-logic/wallet"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Configuration keys, also used as flag names and environment variables (HH_RECORDS_ prefix, dots as underscores).
const (
	ConfInterface      = "interface"
	ConfPort           = "port"
	ConfChainURL       = "chain.url"
	ConfContract       = "chain.contract"
	ConfKeyFile        = "wallet.keyfile"
	ConfPassphrase     = "wallet.passphrase"
	ConfKey            = "wallet.key"
	ConfPinningURL     = "pinning.url"
	ConfPinningKey     = "pinning.apikey"
	ConfPinningSecret  = "pinning.secret"
	ConfPinningRetries = "pinning.retries"
	ConfUploadGas      = "upload.gas"
	ConfGrantGas       = "grant.gas"
	ConfMaxUploadSize  = "upload.maxsize"
	ConfSweepInterval  = "sweep.interval"
	ConfSweepGrace     = "sweep.grace"
	ConfOutput         = "output"
)

// Engine groups the records logic life cycle with its command line and HTTP routes.
type Engine struct {
	Name      string
	Cmd       *cobra.Command
	Configure func() error
	Start     func() error
	Shutdown  func() error
	Routes    func(router api.EchoRouter)
}

// Config is the resolved configuration of the process.
type Config struct {
	ChainURL      string
	Contract      string
	Wallet        wallet.Config
	Pinning       pinning.Config
	UploadGas     uint64
	GrantGas      uint64
	MaxUploadSize int64
	SweepInterval time.Duration
	SweepGrace    time.Duration
}

func logger() *logrus.Entry {
	return logrus.StandardLogger().WithField("module", "engine")
}

// ConfigFromViper reads the configuration keys from v.
func ConfigFromViper(v *viper.Viper) Config {
	return Config{
		ChainURL: v.GetString(ConfChainURL),
		Contract: v.GetString(ConfContract),
		Wallet: wallet.Config{
			KeyFile:    v.GetString(ConfKeyFile),
			Passphrase: v.GetString(ConfPassphrase),
			Key:        v.GetString(ConfKey),
		},
		Pinning: pinning.Config{
			URL:     v.GetString(ConfPinningURL),
			APIKey:  v.GetString(ConfPinningKey),
			Secret:  v.GetString(ConfPinningSecret),
			Retries: v.GetInt(ConfPinningRetries),
		},
		UploadGas:     v.GetUint64(ConfUploadGas),
		GrantGas:      v.GetUint64(ConfGrantGas),
		MaxUploadSize: v.GetInt64(ConfMaxUploadSize),
		SweepInterval: v.GetDuration(ConfSweepInterval),
		SweepGrace:    v.GetDuration(ConfSweepGrace),
	}
}

// Validate checks the settings needed to connect.
func (c Config) Validate() error {
	var errs []error
	if c.ChainURL == "" {
		errs = append(errs, errors.Errorf("%s is not set", ConfChainURL))
	}
	if c.Contract == "" {
		errs = append(errs, errors.Errorf("%s is not set", ConfContract))
	}
	if c.Pinning.APIKey == "" || c.Pinning.Secret == "" {
		errs = append(errs, errors.Errorf("%s and %s must both be set", ConfPinningKey, ConfPinningSecret))
	}
	if c.MaxUploadSize < 0 {
		errs = append(errs, errors.Errorf("%s must not be negative", ConfMaxUploadSize))
	}
	return errors.Combine(errs...)
}

// Connect dials the chain and builds the session shared by all actions of this process.
func Connect(ctx context.Context, config Config) (*pkg.Session, error) {
	client, err := ethclient.DialContext(ctx, config.ChainURL)
	if err != nil {
		return nil, errors.WrapIff(err, "could not connect to %s", config.ChainURL)
	}
	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, errors.WrapIf(err, "could not read chain id")
	}

	keySession := wallet.NewKeySession(config.Wallet, chainID)
	gateway, err := chain.NewGateway(client, keySession, chain.Config{
		Contract:  config.Contract,
		UploadGas: config.UploadGas,
		WriteGas:  config.GrantGas,
	})
	if err != nil {
		client.Close()
		return nil, err
	}

	session := &pkg.Session{
		Chain:   gateway,
		Pinning: pinning.NewClient(config.Pinning),
		Wallet:  keySession,
	}
	session.OnClose(func() error {
		client.Close()
		return nil
	})
	logger().Infof("connected to chain %s, registry %s", chainID, config.Contract)
	return session, nil
}

// NewRecordsLogicEngine returns the engine around the process wide RecordsLogic.
func NewRecordsLogicEngine() *Engine {
	rl := pkg.RecordsLogicInstance()
	flows := pkg.NewFlowRegistry()

	configure := func() error {
		config := ConfigFromViper(viper.GetViper())
		if err := config.Validate(); err != nil {
			return err
		}
		rl.Config = pkg.RecordsLogicConfig{MaxUploadSize: config.MaxUploadSize}
		return rl.Configure()
	}
	start := func() error {
		session, err := Connect(context.Background(), ConfigFromViper(viper.GetViper()))
		if err != nil {
			return err
		}
		rl.Session = session
		return nil
	}

	connect := func() error {
		if err := configure(); err != nil {
			return err
		}
		return start()
	}

	return &Engine{
		Name:      "RecordsLogic",
		Cmd:       cmd(rl, connect),
		Configure: configure,
		Start:     start,
		Shutdown:  rl.Shutdown,
		Routes: func(router api.EchoRouter) {
			api.RegisterHandlers(router, &api.Wrapper{Cl: rl, Flows: flows, MaxUploadSize: rl.Config.MaxUploadSize})
		},
	}
}
