// Package storage persists the deployment record produced by the deployer.
//
// The record is small and mutable: every redeploy replaces it. A local file
// (deployment.json) is the authoritative copy; remote stores are optional
// mirrors that make the address available to other machines:
//
//   - FileStore: deployment.json on the local file system, replaced atomically
//   - S3Store: <prefix>/deployment.json in an S3-compatible bucket
//   - IPFSStore: a new IPFS object per save, CID logged
//   - VaultStore: a HashiCorp Vault KV v2 secret
//
// MultiStore combines a primary store with mirrors. Save fails only when the
// primary fails; mirror failures are logged.
//
// # Storage URI Format
//
// Stores are specified using URI format:
//
//	[scheme]://[auth@]host[:port][/path][?params]
//
// Supported URI schemes:
//
//   - ./deployment.json (bare path) or file:///var/lib/mosaic/deployment.json
//   - s3://[ACCESS_KEY:SECRET_KEY@]bucket/prefix?region=us-west-2&endpoint=http://minio:9000
//   - ipfs://ipfs.example.com:5001
//   - vault://vault.example.com:8200/secret/mosaic/mantle-sepolia
//
// # Record Format
//
//	{
//	  "network": "mantle-sepolia",
//	  "address": "0x5FbDB2315678afecb367f032d93F642f64180aa3",
//	  "timestamp": "2025-03-01T12:30:45.123Z",
//	  "deployer": "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
//	  "chainId": "5003",
//	  "txHash": "0x..."
//	}
//
// Only network, address and timestamp are required when reading a record back.
package storage
