/*
Package events implements the topic-keyed pub/sub broker behind spec
§4.3: document and collection change notifications published by
pkg/storage and consumed by the console's live-query surface.

Unlike a single broadcast-to-everyone bus, each topic gets its own
lazily created, bounded ring buffer (capacity 100). A publish to a
topic with no subscribers is a no-op; a publish to a full buffer drops
the oldest entry rather than blocking the writer, since storage
mutations must never wait on a slow subscriber.
*/
package events
