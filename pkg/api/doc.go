/*
Package api is the process's only network-facing surface: an internal
health, readiness, and Prometheus metrics endpoint (spec §6 explicitly
puts the console's HTTP/WS transport and route definitions out of
scope — callers there consume pkg/storage and pkg/rules directly).

	GET /health   liveness; always 200 once the process is up
	GET /ready    readiness; probes every storage tree and the broker
	GET /metrics  Prometheus exposition (pkg/metrics)
*/
package api
