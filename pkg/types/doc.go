/*
Package types defines the core data structures shared across Triggr's
reactive pipeline.

This package contains the domain model used by the storage, decoder,
DSL, and rule-evaluation layers: projects, contract metadata and type
registries, decoded runtime events, documents, triggers, and the rule
AST the DSL parser produces. These types are used by every other
package for persistence, decoding, and evaluation.

# Core Types

Console-facing:
  - Project: a console user's binding of a contract address to a
    database namespace, with an encrypted API key.
  - ContractMetadata: the event schema + type registry for one contract.

Pipeline runtime:
  - EventData: one decoded chain event (name + named fields).
  - Document: one JSON document stored under a project/collection/id.
  - Trigger: a named bundle of rules tied to one contract address.

Rule AST (produced by pkg/dsl, consumed by pkg/rules):
  - Rule, Condition, Action

All types are JSON-serializable; the storage layer persists them as
JSON values under byte-string keys (see pkg/storage).
*/
package types
