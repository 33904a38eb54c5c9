package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/mosaicdev/mosaic-registry/cmd/flags"
	"github.com/mosaicdev/mosaic-registry/config"
	"github.com/mosaicdev/mosaic-registry/httpserver"
	"github.com/mosaicdev/mosaic-registry/registry"
)

var flagListenAddr = &cli.StringFlag{
	Name:    "listen-addr",
	Value:   "127.0.0.1:8080",
	EnvVars: []string{"LISTEN_ADDR"},
	Usage:   "address to listen on for API",
}

var flagReadOnly = &cli.BoolFlag{
	Name:  "read-only",
	Usage: "never load a signing key, refuse POST /api/v1/deployments",
}

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "registry-gateway",
		Usage: "Serve the MosaicRegistry over HTTP",
		Flags: append(append(append(append([]cli.Flag{
			flagListenAddr,
			flagReadOnly,
			flags.RegistryAddressFlag,
			flags.DeploymentFileFlag,
			flags.LogServiceFlagFn("mosaic-gateway"),
		}, flags.NetworkFlags...), flags.SignerFlags...), flags.ServerFlags...), flags.LogFlags...),
		Action: func(cCtx *cli.Context) error {
			logger := flags.SetupLogger(cCtx)
			ctx := cCtx.Context

			cfg, err := flags.LoadConfig(cCtx)
			if err != nil {
				return err
			}

			address, err := flags.RegistryAddress(ctx, cfg, logger)
			if err != nil {
				return err
			}

			ethClient, err := flags.Dial(ctx, cfg, logger)
			if err != nil {
				logger.Error("Failed to dial RPC", "err", err)
				return err
			}
			defer ethClient.Close()

			regClient, err := registry.NewMosaicRegistryClient(ethClient, ethClient, address)
			if err != nil {
				return err
			}
			regClient.SetGasPricePolicy(cfg.GasPolicy())
			regClient.SetConfirmer(cfg.Confirmer())

			if !cCtx.Bool(flagReadOnly.Name) {
				key, err := flags.LoadSigningKey(cCtx)
				switch {
				case errors.Is(err, config.ErrNoSigningKey):
					logger.Warn("No signing key configured, serving read-only")
				case err != nil:
					return err
				default:
					auth, err := bind.NewKeyedTransactorWithChainID(key, cfg.Network.ChainID)
					if err != nil {
						return err
					}
					regClient.SetTransactOpts(auth)
					logger.Info("Signing registry writes", "signer", auth.From.Hex())
				}
			}

			handler := httpserver.NewHandler(regClient, logger)
			server, err := httpserver.New(flags.ConfigureServer(cCtx, logger, cCtx.String(flagListenAddr.Name)), handler)
			if err != nil {
				logger.Error("Failed to create server", "err", err)
				return err
			}

			logger.Info("Starting server", "registry", address.Hex(), "network", cfg.Network.Name)
			server.RunInBackground()

			// Wait for termination signal
			exit := make(chan os.Signal, 1)
			signal.Notify(exit, os.Interrupt, syscall.SIGTERM)
			<-exit
			logger.Info("Shutdown signal received")

			server.Shutdown()
			logger.Info("Server shutdown complete")
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
