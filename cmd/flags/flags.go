package flags

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"log/slog"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/mosaicdev/mosaic-registry/common"
	"github.com/mosaicdev/mosaic-registry/config"
	"github.com/mosaicdev/mosaic-registry/httpserver"
	"github.com/mosaicdev/mosaic-registry/interfaces"
	"github.com/mosaicdev/mosaic-registry/storage"
	"github.com/mosaicdev/mosaic-registry/transact"
)

func SetupLogger(cCtx *cli.Context) (log *slog.Logger) {
	logJSON := cCtx.Bool(LogJsonFlag.Name)
	logDebug := cCtx.Bool(LogDebugFlag.Name)
	logUID := cCtx.Bool(LogUidFlag.Name)
	logService := cCtx.String("log-service")

	logger := common.SetupLogger(&common.LoggingOpts{
		Debug:   logDebug,
		JSON:    logJSON,
		Service: logService,
		Version: common.Version,
	})

	if logUID {
		id := uuid.Must(uuid.NewRandom())
		logger = logger.With("uid", id.String())
	}
	return logger
}

func ConfigureServer(cCtx *cli.Context, logger *slog.Logger, listenAddr string) *httpserver.HTTPServerConfig {
	metricsAddr := cCtx.String(MetricsAddrFlag.Name)
	enablePprof := cCtx.Bool(PprofFlag.Name)
	drainDuration := time.Duration(cCtx.Int64(DrainSecondsFlag.Name)) * time.Second

	return &httpserver.HTTPServerConfig{
		ListenAddr:               listenAddr,
		MetricsAddr:              metricsAddr,
		Log:                      logger,
		EnablePprof:              enablePprof,
		DrainDuration:            drainDuration,
		GracefulShutdownDuration: 30 * time.Second,
		ReadTimeout:              60 * time.Second,
		// Writes wait for confirmation
		WriteTimeout: cCtx.Duration(ConfirmTimeoutFlag.Name) + 30*time.Second,
	}
}

// LoadConfig resolves the network preset and its overrides from flags and environment.
func LoadConfig(cCtx *cli.Context) (*config.Config, error) {
	cfg, err := config.New(cCtx.String(NetworkFlag.Name))
	if err != nil {
		return nil, err
	}

	cfg.RPCURL = cCtx.String(RpcAddrFlag.Name)
	cfg.ConfirmTimeout = cCtx.Duration(ConfirmTimeoutFlag.Name)
	if path := cCtx.String(DeploymentFileFlag.Name); path != "" {
		cfg.DeploymentFile = path
	}
	if path := cCtx.String(ArtifactPathFlag.Name); path != "" {
		cfg.ArtifactPath = path
	}
	cfg.Mirrors = cCtx.StringSlice(MirrorsFlag.Name)

	if raw := cCtx.String(GasPriceFlag.Name); raw != "" {
		price, err := transact.ParseGwei(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", GasPriceFlag.Name, err)
		}
		cfg.GasPrice = price
	}

	if raw := cCtx.String(RegistryAddressFlag.Name); raw != "" {
		address, err := interfaces.ParseAddress(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", RegistryAddressFlag.Name, err)
		}
		cfg.RegistryAddress = address
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadSigningKey reads the key from --private-key or, failing that, from Vault.
func LoadSigningKey(cCtx *cli.Context) (*ecdsa.PrivateKey, error) {
	return config.LoadSigningKey(cCtx.Context, cCtx.String(PrivateKeyFlag.Name), config.VaultKeySource{
		Address: cCtx.String(VaultAddrFlag.Name),
		Token:   cCtx.String(VaultTokenFlag.Name),
		Path:    cCtx.String(VaultKeyPathFlag.Name),
		Field:   cCtx.String(VaultKeyFieldFlag.Name),
	})
}

// Dial connects to the configured endpoint and checks it serves the expected chain.
func Dial(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*ethclient.Client, error) {
	endpoint := cfg.Endpoint()
	logger.Info("Connecting to Ethereum RPC", "network", cfg.Network.Name, "address", endpoint)

	client, err := ethclient.DialContext(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("could not dial %s: %w", endpoint, transact.Classify(err))
	}
	if err := cfg.VerifyChainID(ctx, client); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

// RegistryAddress returns --registry-address or the address of the last
// deployment recorded in --deployment-file.
func RegistryAddress(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ethcommon.Address, error) {
	if cfg.RegistryAddress != (ethcommon.Address{}) {
		return cfg.RegistryAddress, nil
	}

	store, err := storage.NewRecordStoreFactory(logger).RecordStoreFor(cfg.DeploymentFile)
	if err != nil {
		return ethcommon.Address{}, err
	}
	loader, ok := store.(interfaces.RecordLoader)
	if !ok {
		return ethcommon.Address{}, fmt.Errorf("%s cannot be read back", store.LocationURI())
	}

	record, err := loader.Load(ctx)
	if err != nil {
		if errors.Is(err, interfaces.ErrRecordNotFound) {
			return ethcommon.Address{}, fmt.Errorf("no registry address: set %s or deploy first (%w)", RegistryAddressFlag.Name, err)
		}
		return ethcommon.Address{}, err
	}
	if record.Network != cfg.Network.Name {
		logger.Warn("Deployment record belongs to another network", "record", record.Network, "network", cfg.Network.Name)
	}
	logger.Debug("Registry address loaded", "address", record.Address.Hex(), "location", store.LocationURI())
	return record.Address, nil
}

var NetworkFlag = &cli.StringFlag{
	Name:    "network",
	Value:   config.DefaultNetwork,
	EnvVars: []string{"NETWORK"},
	Usage:   "network preset: mantle-sepolia, mantle or localhost",
}

var RpcAddrFlag = &cli.StringFlag{
	Name:    "rpc-addr",
	EnvVars: []string{"RPC_URL"},
	Usage:   "address to connect to RPC, overrides the network preset and MANTLE_SEPOLIA_RPC",
}

var PrivateKeyFlag = &cli.StringFlag{
	Name:    "private-key",
	EnvVars: []string{"PRIVATE_KEY"},
	Usage:   "hex-encoded signing key",
}

var VaultAddrFlag = &cli.StringFlag{
	Name:    "vault-addr",
	EnvVars: []string{"VAULT_ADDR"},
	Usage:   "Vault server holding the signing key, used when no private key is given",
}
var VaultTokenFlag = &cli.StringFlag{
	Name:    "vault-token",
	EnvVars: []string{"VAULT_TOKEN"},
	Usage:   "Vault token",
}
var VaultKeyPathFlag = &cli.StringFlag{
	Name:    "vault-key-path",
	EnvVars: []string{"VAULT_KEY_PATH"},
	Usage:   "logical path of the signing key secret, e.g. secret/data/mosaic/deployer",
}
var VaultKeyFieldFlag = &cli.StringFlag{
	Name:    "vault-key-field",
	Value:   config.DefaultVaultKeyField,
	EnvVars: []string{"VAULT_KEY_FIELD"},
	Usage:   "secret field holding the hex key",
}

var GasPriceFlag = &cli.StringFlag{
	Name:    "gas-price-gwei",
	EnvVars: []string{"GAS_PRICE_GWEI"},
	Usage:   "gas price in gwei, replaces the network preset (0.02 on Mantle)",
}

var ConfirmTimeoutFlag = &cli.DurationFlag{
	Name:    "confirm-timeout",
	Value:   transact.DefaultConfirmTimeout,
	EnvVars: []string{"CONFIRM_TIMEOUT"},
	Usage:   "how long to wait for a transaction to be included, must be positive",
}

var RegistryAddressFlag = &cli.StringFlag{
	Name:    "registry-address",
	EnvVars: []string{"REGISTRY_ADDRESS"},
	Usage:   "MosaicRegistry contract address, read from the deployment file when empty",
}

var DeploymentFileFlag = &cli.StringFlag{
	Name:    "deployment-file",
	Value:   config.DefaultDeploymentFile,
	EnvVars: []string{"DEPLOYMENT_FILE"},
	Usage:   "where the deployment record is written and read (path or file:// URI)",
}

var ArtifactPathFlag = &cli.StringFlag{
	Name:    "artifact",
	Value:   config.DefaultArtifactPath,
	EnvVars: []string{"ARTIFACT_PATH"},
	Usage:   "Hardhat or Foundry artifact of the contract to deploy",
}

var MirrorsFlag = &cli.StringSliceFlag{
	Name:    "mirror",
	EnvVars: []string{"DEPLOYMENT_MIRRORS"},
	Usage:   "additional record store URI (s3://, ipfs://, vault://), may be repeated",
}

var LogJsonFlag = &cli.BoolFlag{
	Name:    "log-json",
	Value:   false,
	EnvVars: []string{"LOG_JSON"},
	Usage:   "log in JSON format",
}
var LogDebugFlag = &cli.BoolFlag{
	Name:    "log-debug",
	Value:   false,
	EnvVars: []string{"LOG_DEBUG"},
	Usage:   "log debug messages",
}
var LogUidFlag = &cli.BoolFlag{
	Name:    "log-uid",
	Value:   false,
	EnvVars: []string{"LOG_UID"},
	Usage:   "generate a uuid and add to all log messages",
}

var LogServiceFlagFn = func(service string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "log-service",
		Value:   service,
		EnvVars: []string{"LOG_SERVICE"},
		Usage:   "add 'service' tag to logs",
	}
}

var PprofFlag = &cli.BoolFlag{
	Name:  "pprof",
	Value: false,
	Usage: "enable pprof debug endpoint",
}
var DrainSecondsFlag = &cli.Int64Flag{
	Name:  "drain-seconds",
	Value: 45,
	Usage: "seconds to wait in drain HTTP request",
}
var MetricsAddrFlag = &cli.StringFlag{
	Name:    "metrics-addr",
	Value:   "127.0.0.1:8090",
	EnvVars: []string{"METRICS_ADDR"},
	Usage:   "address to listen on for Prometheus metrics, empty to disable",
}

var LogFlags = []cli.Flag{
	LogJsonFlag,
	LogDebugFlag,
	LogUidFlag,
}

var NetworkFlags = []cli.Flag{
	NetworkFlag,
	RpcAddrFlag,
	GasPriceFlag,
	ConfirmTimeoutFlag,
}

var SignerFlags = []cli.Flag{
	PrivateKeyFlag,
	VaultAddrFlag,
	VaultTokenFlag,
	VaultKeyPathFlag,
	VaultKeyFieldFlag,
}

var ServerFlags = []cli.Flag{
	PprofFlag,
	DrainSecondsFlag,
	MetricsAddrFlag,
}
