// Package main (cmd/deploy) deploys the MosaicRegistry contract.
//
// It loads a .env file when present, then reads every setting from flags or
// their environment variables; nothing is required beyond a signing key.
// The contract artifact (MosaicRegistry.json by default) is deployed to the
// selected network and the deployment record is written to deployment.json
// plus any configured mirrors. A failed deployment exits with status 1 and
// leaves deployment.json untouched.
//
// Example usage:
//
//	PRIVATE_KEY=0x... deploy
//	deploy --network localhost --artifact out/MosaicRegistry.sol/MosaicRegistry.json
//	deploy --mirror s3://deployments/mosaic?region=eu-west-1 --mirror ipfs://127.0.0.1:5001
//
// The signing key may instead be read from Vault:
//
//	VAULT_ADDR=https://vault:8200 VAULT_TOKEN=... VAULT_KEY_PATH=secret/data/mosaic/deployer deploy
package main
