package main

import (
	"log"
	"os"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/mosaicdev/mosaic-registry/artifact"
	"github.com/mosaicdev/mosaic-registry/cmd/flags"
	"github.com/mosaicdev/mosaic-registry/deployer"
	"github.com/mosaicdev/mosaic-registry/storage"
)

var flagSkipProbe = &cli.BoolFlag{
	Name:  "skip-probe",
	Usage: "do not call totalDeployments on the deployed contract",
}

func main() {
	// A missing .env is fine, the environment may already be set.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "deploy",
		Usage: "Deploy the MosaicRegistry contract and record where it landed",
		Flags: append(append(append([]cli.Flag{
			flags.ArtifactPathFlag,
			flags.DeploymentFileFlag,
			flags.MirrorsFlag,
			flagSkipProbe,
			flags.LogServiceFlagFn("mosaic-deploy"),
		}, flags.NetworkFlags...), flags.SignerFlags...), flags.LogFlags...),
		Action: func(cCtx *cli.Context) error {
			logger := flags.SetupLogger(cCtx)
			ctx := cCtx.Context

			cfg, err := flags.LoadConfig(cCtx)
			if err != nil {
				return err
			}

			art, err := artifact.Load(cfg.ArtifactPath)
			if err != nil {
				return err
			}

			key, err := flags.LoadSigningKey(cCtx)
			if err != nil {
				return err
			}
			auth, err := bind.NewKeyedTransactorWithChainID(key, cfg.Network.ChainID)
			if err != nil {
				return err
			}

			store, err := storage.NewRecordStoreFactory(logger).CreateMultiStore(cfg.DeploymentFile, cfg.Mirrors)
			if err != nil {
				return err
			}

			client, err := flags.Dial(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer client.Close()

			d, err := deployer.NewDeployer(client, auth, store, deployer.Config{
				Network:   cfg.Network.Name,
				ChainID:   cfg.Network.ChainID,
				GasPolicy: cfg.GasPolicy(),
				Confirmer: cfg.Confirmer(),
				SkipProbe: cCtx.Bool(flagSkipProbe.Name),
			}, logger)
			if err != nil {
				return err
			}

			record, err := d.Deploy(ctx, art)
			if err != nil {
				logger.Error("Deployment failed", "err", err)
				return err
			}

			logger.Info("MosaicRegistry deployed", "address", record.Address.Hex(), "deployer", record.Deployer.Hex())
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
