/*
Package storage provides bbolt-backed persistence for Triggr's five
logical trees (spec.md §3, §6): projects, users, app (documents),
metadata, and triggers. Each tree is an independent bbolt file, opened
at a path configurable via the TRIGGR_DB_PATH_* environment variables
(pkg/config).

	Store
	 ├── Projects  — raw_api_key -> Project JSON
	 ├── Users     — owner_id -> [Project JSON ...]
	 ├── App       — document::{pid}::{col}::{id} -> Document JSON
	 ├── Metadata  — fixed key -> [MetadataIndexEntry ...]
	 └── Triggers  — contract_address -> [Trigger JSON ...]

DocumentStore (docstore.go) implements the collection-scoped CRUD of
spec §4.2 over the App tree, publishing every mutation through
pkg/events. ProjectStore and TriggerStore (projectstore.go,
triggerstore.go) implement spec §4.4 over the remaining trees.
*/
package storage
