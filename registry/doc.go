// Package registry provides an interface to interact with the MosaicRegistry
// contract, an on-chain index of contract deployments.
//
// Every entry records the deployed contract address, the account that
// recorded it, a free-form contract type, the block timestamp, the keccak256
// digest of the contract source and a verification flag. Entry ids are
// assigned by the contract and only become known once the ContractDeployed
// event of the recording transaction is observed.
//
// # Transaction Operations
//
// RecordDeployment is the only state-changing operation. Before using it,
// call SetTransactOpts with options carrying a signer for the target chain.
// The call blocks until the transaction is confirmed or the confirmer's
// timeout expires, then extracts the id from the receipt.
//
// Read-only operations do not require transaction options and can be used
// immediately after creating a client instance. Every read is a fresh
// round trip; nothing is cached.
//
// Errors are classified by the transact package, so callers can match
// transact.ErrExecutionReverted, transact.ErrConnectivity and friends with
// errors.Is.
//
// # Usage Example
//
//	client, err := registry.NewMosaicRegistryClient(ethClient, ethClient, registryAddress)
//	if err != nil {
//	    log.Fatalf("Failed to create registry client: %v", err)
//	}
//
//	privateKey, _ := crypto.HexToECDSA("your-private-key")
//	auth, _ := bind.NewKeyedTransactorWithChainID(privateKey, chainID)
//	client.SetTransactOpts(auth)
//	client.SetGasPricePolicy(transact.FixedGasPrice(big.NewInt(20_000_000)))
//
//	id, err := client.RecordDeployment(ctx, tokenAddress, "ERC20", source)
//	entry, err := client.GetContractData(ctx, id)
//
// # Testing
//
// MockRegistry is a testify mock of interfaces.MosaicRegistry.
// MockRegistryClient is an in-memory implementation with the contract's id
// assignment and revert behaviour.
package registry
