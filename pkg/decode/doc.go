/*
Package decode implements the event decoder of spec §4.7: given a raw
on-chain payload and a contract's metadata, it tries each declared
event in order against the remainder of the payload (after its
selector byte) and accepts the first whose argument list decodes with
zero bytes left over. There is no signature lookup — trial decoding
against the whole event list is the entire disambiguation strategy.

Each decoded field is returned as its textual rendering; pkg/rules
normalises those strings into typed JSON values before rule
evaluation.
*/
package decode
