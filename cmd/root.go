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

package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/healthhub/hh-records-logic/api"
	"github.com/healthhub/hh-records-logic/engine"
	"github.com/healthhub/hh-records-logic/pkg"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var e = engine.NewRecordsLogicEngine()
var rootCmd = e.Cmd

var cfgFile string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the records logic api server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := e.Configure(); err != nil {
			return err
		}
		if err := e.Start(); err != nil {
			return err
		}
		defer e.Shutdown()

		config := engine.ConfigFromViper(viper.GetViper())

		server := echo.New()
		server.HideBanner = true
		server.Use(middleware.Logger())
		server.Use(api.BodyLimit(config.MaxUploadSize))
		e.Routes(server)
		api.RegisterMetrics(server)

		scheduler, err := engine.NewSweepScheduler(pkg.RecordsLogicInstance(), config.SweepInterval, config.SweepGrace)
		if err != nil {
			return err
		}
		if scheduler != nil {
			logrus.Infof("orphan sweep scheduled every %s", config.SweepInterval)
			scheduler.StartAsync()
			defer scheduler.Stop()
		}

		go func() {
			addr := fmt.Sprintf("%s:%d", viper.GetString(engine.ConfInterface), viper.GetInt(engine.ConfPort))
			if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
				server.Logger.Fatal(err)
			}
		}()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.AddCommand(serveCmd)

	// Here you will define your flags and configuration settings.
	// Cobra supports persistent flags, which, if defined here,
	// will be global for your application.
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.hh-records-logic.yaml)")
	flags.String(engine.ConfChainURL, "http://localhost:8545", "JSON-RPC endpoint of the chain")
	flags.String(engine.ConfContract, "", "address of the patient registry contract")
	flags.String(engine.ConfKeyFile, "", "keystore file of the signing wallet")
	flags.String(engine.ConfPassphrase, "", "passphrase of the keystore file")
	flags.String(engine.ConfKey, "", "hex private key of the signing wallet, when no keystore file is used")
	flags.String(engine.ConfPinningURL, "https://api.pinata.cloud", "pinning service endpoint")
	flags.String(engine.ConfPinningKey, "", "pinning service api key")
	flags.String(engine.ConfPinningSecret, "", "pinning service api secret")
	flags.Int(engine.ConfPinningRetries, 3, "retries of pinning service listings")
	flags.Uint64(engine.ConfUploadGas, 300000, "gas limit of file record transactions")
	flags.Uint64(engine.ConfGrantGas, 200000, "gas limit of all other transactions")
	flags.Int64(engine.ConfMaxUploadSize, pkg.DefaultMaxUploadSize, "largest accepted upload in bytes")
	bindFlags(flags, engine.ConfOutput, engine.ConfChainURL, engine.ConfContract, engine.ConfKeyFile,
		engine.ConfPassphrase, engine.ConfKey, engine.ConfPinningURL, engine.ConfPinningKey, engine.ConfPinningSecret,
		engine.ConfPinningRetries, engine.ConfUploadGas, engine.ConfGrantGas, engine.ConfMaxUploadSize)

	// Cobra also supports local flags, which will only run
	// when this action is called directly.
	serve := serveCmd.Flags()
	serve.String(engine.ConfInterface, "localhost", "Server interface binding")
	serve.IntP(engine.ConfPort, "p", 1324, "Server listen port")
	serve.Duration(engine.ConfSweepInterval, 0, "interval of the orphan pin sweep, 0 disables it")
	serve.Duration(engine.ConfSweepGrace, pkg.DefaultSweepGrace, "minimum age of a pin before the sweep considers it orphaned")
	bindFlags(serve, engine.ConfInterface, engine.ConfPort, engine.ConfSweepInterval, engine.ConfSweepGrace)

	viper.SetEnvPrefix("HH_RECORDS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func bindFlags(flags *pflag.FlagSet, keys ...string) {
	for _, key := range keys {
		if err := viper.BindPFlag(key, flags.Lookup(key)); err != nil {
			logrus.Panicf("unable to bind flag %s: %v", key, err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".hh-records-logic" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".hh-records-logic")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
