/*
Package security provides the crypto & id utilities the rest of Triggr
builds on: AEAD encryption of project API keys, random nonce/token
generation, and UUID generation (spec §4.10).

# API-key encryption

A project's raw API key is stored only as the lookup key of its
project record (pkg/storage); the record itself carries only the
encrypted form. NewKeyManager holds a
process-wide 256-bit AES-GCM key; Encrypt produces
base64(nonce‖ciphertext‖tag) with every '/' replaced by '_' so the
result is safe to embed in a URL or a JSON string without further
escaping; Decrypt reverses both steps. The raw key is generated once
per project (GenerateToken(32)) and returned to the caller exactly
once — only the encrypted form is persisted in the project record.
*/
package security
