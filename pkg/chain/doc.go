/*
Package chain implements the chain subscriber of spec §4.6: a
long-lived websocket subscription to a Substrate-family RPC endpoint
that yields per-block event bundles, filters to the contract-execution
pallet, and forwards (contract_address, payload_bytes) pairs to
pkg/decode and onward to pkg/rules over a bounded channel.

The subscriber is one of the system's two long-lived tasks (spec §5);
it never aborts on a single malformed bundle or decode failure — both
are logged and the stream continues.
*/
package chain
