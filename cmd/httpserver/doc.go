// Package main (cmd/httpserver) runs the MosaicRegistry gateway.
//
// The gateway exposes the registry client over HTTP (see package httpserver
// for the routes). It signs recordDeployment transactions with the key from
// --private-key or Vault; without a key, or with --read-only, it serves
// reads only and answers writes with 403.
//
// The server implements graceful shutdown on receiving termination signals
// (SIGINT/SIGTERM) and supports health checks, drain, Prometheus metrics and
// optional profiling endpoints.
//
// Example usage:
//
//	registry-gateway --network mantle-sepolia --listen-addr 0.0.0.0:8080
//	registry-gateway --network localhost --registry-address 0x5FbD... --read-only --metrics-addr ""
package main
