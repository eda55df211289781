/*
Package metadata implements the in-memory contract-metadata cache of
spec §4.5: a lowercased-address -> ContractMetadata map populated once
at startup from the metadata tree's fixed-key index, and kept
authoritative afterwards so the decode hot path never touches the
filesystem.
*/
package metadata
