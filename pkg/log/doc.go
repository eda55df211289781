/*
Package log provides structured logging for Triggr using zerolog.

It wraps zerolog with a single package-level Logger, initialized once
via Init, plus helper constructors that attach domain context —
contract address, trigger id, project id — to a child logger so callers
don't repeat those fields at every call site.

# Usage

	log.Init(log.Config{Level: log.InfoLevel, JSONOutput: true})

	chainLog := log.WithContract("0xabc123...")
	chainLog.Info().Str("event", "Transferred").Msg("decoded event")

	triggerLog := log.WithTrigger(trigger.ID)
	triggerLog.Error().Err(err).Msg("action failed")

# Levels

Debug is for decode-attempt tracing (the decoder tries every event in
declaration order); Info covers lifecycle events (subscription
(re)connect, trigger fired, project created); Warn covers recoverable
per-item failures (a single event failed to decode, an action's
placeholder didn't resolve); Error is reserved for failures an operator
should investigate (storage I/O, crypto). Fatal exits the process; the
chain subscriber does not use it and does not fail fast: a failed dial,
including the first one at startup, is logged at Error and retried.
*/
package log
