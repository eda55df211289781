/*
Package metrics exposes Triggr's runtime counters and health state over
Prometheus and a small named-component health registry.

Collectors are package-level Prometheus vars registered once in init
(metrics.go) and exposed through Handler. The only ones updated in this
code base are ProjectsTotal and TriggersTotal, which Collector
(collector.go) samples from storage on a 15-second ticker; pkg/chain,
pkg/rules and pkg/events do not touch the event, trigger, action or
pubsub collectors, so those stay at their zero values.

Timer (metrics.go) wraps a single operation's duration for later
observation into a histogram, with a labeled variant for per-kind or
per-outcome histograms.

health.go is a separate, lighter-weight concern from pkg/api's /health
and /ready endpoints: a process-wide named-component registry
(RegisterComponent/UpdateComponent/GetHealth/GetReadiness) that any
long-lived task can report into. No package in this code base calls
RegisterComponent, so the registry holds only what callers of it add.
GetReadiness treats
"storage", "chain_subscriber", and "dispatcher" as critical — an
unregistered or unhealthy critical component marks the whole process
not ready.
*/
package metrics
