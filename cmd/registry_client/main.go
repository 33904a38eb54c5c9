package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/mosaicdev/mosaic-registry/cmd/flags"
	"github.com/mosaicdev/mosaic-registry/httpserver"
	"github.com/mosaicdev/mosaic-registry/interfaces"
	"github.com/mosaicdev/mosaic-registry/registry"
)

var flagGateway = &cli.StringFlag{
	Name:    "gateway",
	EnvVars: []string{"MOSAIC_GATEWAY"},
	Usage:   "talk to a registry gateway at this URL instead of the RPC endpoint",
}

var flagContractAddress = &cli.StringFlag{
	Name:     "contract-address",
	Required: true,
	Usage:    "address of the deployed contract to record",
}
var flagContractType = &cli.StringFlag{
	Name:     "type",
	Required: true,
	Usage:    "free-form contract type, e.g. ERC20",
}
var flagSource = &cli.StringFlag{
	Name:  "source",
	Usage: "contract source code",
}
var flagSourceFile = &cli.StringFlag{
	Name:  "source-file",
	Usage: "file holding the contract source code",
}
var flagFromBlock = &cli.Uint64Flag{
	Name:  "from-block",
	Usage: "first block to scan for ContractDeployed events",
}
var flagDeployer = &cli.StringSliceFlag{
	Name:  "deployer",
	Usage: "only report events from this deployer, may be repeated",
}

const usage string = `Reads and records MosaicRegistry entries.

The registry address is taken from --registry-address or from the deployment
file written by the deploy command.`

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "registry-client",
		Usage: usage,
		Flags: append(append(append([]cli.Flag{
			flagGateway,
			flags.RegistryAddressFlag,
			flags.DeploymentFileFlag,
			flags.LogServiceFlagFn("mosaic-registry-client"),
		}, flags.NetworkFlags...), flags.SignerFlags...), flags.LogFlags...),
		Commands: []*cli.Command{
			{
				Name:  "total",
				Usage: "print the number of recorded deployments",
				Action: func(cCtx *cli.Context) error {
					c, err := NewClient(cCtx, false)
					if err != nil {
						return err
					}
					defer c.Close()
					return c.Total(cCtx)
				},
			},
			{
				Name:      "get",
				Usage:     "print one registry entry",
				ArgsUsage: "<deployment id>",
				Action: func(cCtx *cli.Context) error {
					c, err := NewClient(cCtx, false)
					if err != nil {
						return err
					}
					defer c.Close()
					return c.Get(cCtx)
				},
			},
			{
				Name:      "list",
				Usage:     "print the deployment ids recorded by a deployer",
				ArgsUsage: "<deployer address>",
				Action: func(cCtx *cli.Context) error {
					c, err := NewClient(cCtx, false)
					if err != nil {
						return err
					}
					defer c.Close()
					return c.List(cCtx)
				},
			},
			{
				Name:  "record",
				Usage: "record a deployed contract",
				Flags: []cli.Flag{flagContractAddress, flagContractType, flagSource, flagSourceFile},
				Action: func(cCtx *cli.Context) error {
					c, err := NewClient(cCtx, true)
					if err != nil {
						return err
					}
					defer c.Close()
					return c.Record(cCtx)
				},
			},
			{
				Name:  "history",
				Usage: "print ContractDeployed events",
				Flags: []cli.Flag{flagFromBlock, flagDeployer},
				Action: func(cCtx *cli.Context) error {
					c, err := NewClient(cCtx, false)
					if err != nil {
						return err
					}
					defer c.Close()
					return c.History(cCtx)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

type Client struct {
	reg     interfaces.MosaicRegistry
	history interfaces.DeploymentHistory

	close func()
}

// NewClient connects to the gateway when one is configured and to the RPC
// endpoint otherwise. write asks for a signer.
func NewClient(cCtx *cli.Context, write bool) (*Client, error) {
	if gateway := cCtx.String(flagGateway.Name); gateway != "" {
		gc := httpserver.NewGatewayClient(gateway)
		return &Client{reg: gc, history: gc, close: func() {}}, nil
	}

	logger := flags.SetupLogger(cCtx)
	cfg, err := flags.LoadConfig(cCtx)
	if err != nil {
		return nil, err
	}

	address, err := flags.RegistryAddress(cCtx.Context, cfg, logger)
	if err != nil {
		return nil, err
	}

	ethClient, err := flags.Dial(cCtx.Context, cfg, logger)
	if err != nil {
		return nil, err
	}

	regClient, err := registry.NewMosaicRegistryClient(ethClient, ethClient, address)
	if err != nil {
		ethClient.Close()
		return nil, err
	}
	regClient.SetGasPricePolicy(cfg.GasPolicy())
	regClient.SetConfirmer(cfg.Confirmer())

	if write {
		key, err := flags.LoadSigningKey(cCtx)
		if err != nil {
			ethClient.Close()
			return nil, fmt.Errorf("recording needs a signer: %w", err)
		}
		auth, err := bind.NewKeyedTransactorWithChainID(key, cfg.Network.ChainID)
		if err != nil {
			ethClient.Close()
			return nil, err
		}
		regClient.SetTransactOpts(auth)
	}

	return &Client{reg: regClient, history: regClient, close: ethClient.Close}, nil
}

func (c *Client) Close() {
	c.close()
}

func (c *Client) Total(cCtx *cli.Context) error {
	total, err := c.reg.GetTotalDeployments(cCtx.Context)
	if err != nil {
		return err
	}
	return printJSON(httpserver.TotalResponse{Total: total.String()})
}

func (c *Client) Get(cCtx *cli.Context) error {
	id, err := interfaces.ParseDeploymentID(cCtx.Args().First())
	if err != nil {
		return err
	}
	entry, err := c.reg.GetContractData(cCtx.Context, id)
	if err != nil {
		return err
	}
	return printJSON(httpserver.NewEntryResponse(entry))
}

func (c *Client) List(cCtx *cli.Context) error {
	deployer, err := interfaces.ParseAddress(cCtx.Args().First())
	if err != nil {
		return err
	}
	ids, err := c.reg.GetDeployerContracts(cCtx.Context, deployer)
	if err != nil {
		return err
	}

	resp := httpserver.DeployerResponse{Deployer: deployer.Hex(), DeploymentIDs: make([]string, 0, len(ids))}
	for _, id := range ids {
		resp.DeploymentIDs = append(resp.DeploymentIDs, id.String())
	}
	return printJSON(resp)
}

func (c *Client) Record(cCtx *cli.Context) error {
	contractAddress, err := interfaces.ParseAddress(cCtx.String(flagContractAddress.Name))
	if err != nil {
		return err
	}

	source := cCtx.String(flagSource.Name)
	if path := cCtx.String(flagSourceFile.Name); path != "" {
		if source != "" {
			return errors.New("--source and --source-file are mutually exclusive")
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("could not read source file: %w", err)
		}
		source = string(data)
	}

	id, err := c.reg.RecordDeployment(cCtx.Context, contractAddress, cCtx.String(flagContractType.Name), source)
	if err != nil {
		return err
	}
	return printJSON(httpserver.RecordResponse{
		DeploymentID:   id.String(),
		SourceCodeHash: registry.SourceCodeHash(source).Hex(),
	})
}

func (c *Client) History(cCtx *cli.Context) error {
	var deployers []common.Address
	for _, raw := range cCtx.StringSlice(flagDeployer.Name) {
		deployer, err := interfaces.ParseAddress(raw)
		if err != nil {
			return err
		}
		deployers = append(deployers, deployer)
	}

	events, err := c.history.DeploymentEvents(cCtx.Context, cCtx.Uint64(flagFromBlock.Name), deployers...)
	if err != nil {
		return err
	}

	resp := make([]httpserver.EventResponse, 0, len(events))
	for _, event := range events {
		resp = append(resp, httpserver.NewEventResponse(event))
	}
	return printJSON(resp)
}

func printJSON(v interface{}) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}
