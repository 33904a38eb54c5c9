// Package main (cmd/registry_client) reads and records MosaicRegistry entries
// from the command line.
//
// Commands:
//
//	total    - print the number of recorded deployments
//	get      - print one entry by id (decimal or 0x hex)
//	list     - print the ids recorded by a deployer, in ledger order
//	record   - record a deployed contract; blocks until confirmed and prints the new id
//	history  - print ContractDeployed events, optionally filtered by deployer
//
// Output is JSON on stdout. Ids are decimal strings.
//
// The client talks to the RPC endpoint of the selected network, or to a
// registry gateway when --gateway is set. Without --registry-address the
// registry is located through the deployment file written by cmd/deploy.
//
// Example usage:
//
//	registry-client total
//	registry-client get 0
//	registry-client list 0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266
//	PRIVATE_KEY=0x... registry-client record --contract-address 0x5FbD... --type ERC20 --source-file Token.sol
//	registry-client --gateway http://127.0.0.1:8080 history --from-block 1200000
package main
