/*
Package httpserver implements the MosaicRegistry gateway, a small HTTP API in
front of a registry client.

# Endpoints

	GET  /api/v1/deployments/total                  {"total": "N"}
	GET  /api/v1/deployments/{id}                   registry entry
	GET  /api/v1/deployments/events?fromBlock=&deployer=
	GET  /api/v1/deployers/{address}/deployments    {"deployer", "deploymentIds"}
	POST /api/v1/deployments                        {"deploymentId", "sourceCodeHash"}

Ids are decimal strings. Addresses are accepted with or without the 0x
prefix and returned checksummed.

POST needs a registry client with a signer and is refused with 403 when the
gateway runs read-only. Writes are serialised through one mutex, so the
gateway never races its own nonce. The request blocks until the transaction
is confirmed and its ContractDeployed event has been seen.

# Errors

Errors are returned as {"error": "..."}:

  - 400 malformed id, address or body
  - 404 read reverted (unknown id)
  - 422 write reverted
  - 402 signer cannot pay for gas
  - 502 node unreachable or the receipt has no ContractDeployed event
  - 504 confirmation timed out

GatewayClient maps these codes back onto the transact error taxonomy so a
remote gateway can stand in for a direct RPC client.

# Operations

/livez, /readyz, /drain and /undrain behave as on every other service of
ours; a metrics server is started when MetricsAddr is set.
*/
package httpserver
