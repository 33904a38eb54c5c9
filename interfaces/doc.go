// Package interfaces defines core interfaces and types for the MosaicRegistry
// toolkit, separating interface definitions from implementations.
//
// # Registry Interfaces
//
// MosaicRegistry: typed access to the four contract methods. Implemented by
// registry.MosaicRegistryClient and mocked by registry.MockRegistry.
//
// DeploymentHistory: read access to past ContractDeployed notifications.
//
// # Storage Interfaces
//
// RecordStore: persists the DeploymentRecord written by the deployer
// (file, S3, IPFS or several of them at once).
//
// RecordLoader: reads the last DeploymentRecord back, used by tools that
// locate the registry through deployment.json.
//
// # Types
//
//   - DeploymentRecord: network, address, timestamp and deployer of a registry deployment
//   - DeploymentEntry: one on-chain registry entry
//   - DeploymentEvent: one ContractDeployed log
package interfaces
