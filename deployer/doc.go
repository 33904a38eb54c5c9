// Package deployer deploys a compiled MosaicRegistry artifact and records
// where it landed.
//
// A deployment checks the signer balance, submits the creation transaction
// under the network's gas-price policy and waits for the contract code to
// appear. The resulting DeploymentRecord is then handed to a RecordStore,
// usually a storage.MultiStore whose primary is the local deployment.json.
// Failures before that point leave every store untouched.
//
// Once saved, the deployer calls totalDeployments on the new contract as a
// smoke test. A failing probe is logged and does not fail the deployment.
package deployer
