package types

import "time"

// Project binds a console user's contract to a database namespace.
// Created by an authenticated console user; uniquely indexed by its
// raw API key; soft-linked back from users[owner] -> [projects...].
type Project struct {
	ID                     string   `json:"id"`
	Owner                  string   `json:"owner"`
	APIKeyEncrypted        string   `json:"api_key_encrypted"`
	ContractAddress        string   `json:"contract_address"`
	ContractMetadataPath   string   `json:"contract_metadata_path"`
	ContractEventsSummary  []string `json:"contract_events_summary"`
	Description            string   `json:"description"`
}

// MetadataIndexEntry is one row of the metadata tree's fixed-key index,
// mapping a contract address to the on-disk path of its metadata file.
type MetadataIndexEntry struct {
	Addr string `json:"addr"`
	Path string `json:"path"`
}

// TypeKind discriminates the shape of a TypeDef.
type TypeKind string

const (
	TypeKindPrimitive TypeKind = "primitive"
	TypeKindArray     TypeKind = "array"
	TypeKindComposite TypeKind = "composite"
	TypeKindVariant   TypeKind = "variant"
	TypeKindSequence  TypeKind = "sequence"
	TypeKindTuple     TypeKind = "tuple"
	TypeKindCompact   TypeKind = "compact"
)

// CompositeField is one field of a Composite type or of a Variant's
// field list. Name is empty for an unnamed (tuple-struct) field.
type CompositeField struct {
	Name string `json:"name,omitempty"`
	Type uint32 `json:"type"`
}

// VariantCase is one arm of a tagged Variant type, keyed by its
// discriminant index on the wire.
type VariantCase struct {
	Name   string           `json:"name"`
	Index  uint8            `json:"index"`
	Fields []CompositeField `json:"fields,omitempty"`
}

// TypeDef is one entry of a contract's flat type registry (id -> shape).
// Exactly one of the kind-specific fields is meaningful, selected by Kind.
type TypeDef struct {
	ID   uint32   `json:"id"`
	Path []string `json:"path,omitempty"`
	Kind TypeKind `json:"kind"`

	Primitive string `json:"primitive,omitempty"` // u8/u16/.../i128/bool/str

	ArrayLen  uint32 `json:"array_len,omitempty"`
	ArrayType uint32 `json:"array_type,omitempty"`

	Fields []CompositeField `json:"fields,omitempty"` // composite

	Variants []VariantCase `json:"variants,omitempty"`

	SequenceType uint32 `json:"sequence_type,omitempty"`

	TupleTypes []uint32 `json:"tuple_types,omitempty"`

	CompactType uint32 `json:"compact_type,omitempty"`
}

// EventArg is one ordered argument of an event declaration.
type EventArg struct {
	Label   string `json:"label"`
	TypeID  uint32 `json:"type_id"`
	Indexed bool   `json:"indexed"`
}

// EventSpec is one event's schema: a label plus its ordered arguments.
type EventSpec struct {
	Label string     `json:"label"`
	Args  []EventArg `json:"args"`
}

// ContractMetadata is the event schema + portable type registry
// associated with a lowercased contract address.
type ContractMetadata struct {
	Address string             `json:"address"`
	Events  []EventSpec        `json:"events"`
	Types   map[uint32]TypeDef `json:"types"`
}

// EventData is the decoded runtime event handed from the decoder to
// the dispatcher and evaluator.
type EventData struct {
	EventName string         `json:"event_name"`
	Fields    map[string]any `json:"fields"`
}

// DocumentMetadata carries a document's lifecycle stamps.
type DocumentMetadata struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
}

// Document is one JSON record stored under a project/collection/id.
type Document struct {
	ID       string         `json:"id"`
	Data     map[string]any `json:"data"`
	Metadata DocumentMetadata `json:"metadata"`
}

// ChainEvent is one decoded event addressed to a contract, as handed
// from the chain subscriber to the dispatcher over the bounded
// ingestion channel of spec §5.
type ChainEvent struct {
	ContractAddress string
	Event           *EventData
}

// CollectionSummary is one row of a project's collection listing: a
// name plus its document count and most recent update time.
type CollectionSummary struct {
	Name        string    `json:"name"`
	Count       int       `json:"count"`
	LastUpdated time.Time `json:"last_updated"`
}

// ConditionOp enumerates the comparators and boolean combinators the
// DSL's condition grammar supports.
type ConditionOp string

const (
	OpGreaterThan    ConditionOp = ">"
	OpLessThan       ConditionOp = "<"
	OpGreaterOrEqual ConditionOp = ">="
	OpLessOrEqual    ConditionOp = "<="
	OpEquals         ConditionOp = "=="
	OpNotEquals      ConditionOp = "!="
	OpAnd            ConditionOp = "&&"
	OpOr             ConditionOp = "||"
)

// Condition is the recursive condition AST node: a leaf comparator
// against a field path, or an interior AND/OR combining two children.
type Condition struct {
	Op    ConditionOp `json:"op"`
	Field string      `json:"field,omitempty"` // leaf only
	Value any         `json:"value,omitempty"` // leaf only

	Left  *Condition `json:"left,omitempty"`  // AND/OR only
	Right *Condition `json:"right,omitempty"` // AND/OR only
}

// IsLeaf reports whether this node is a comparator rather than AND/OR.
func (c *Condition) IsLeaf() bool {
	return c != nil && c.Op != OpAnd && c.Op != OpOr
}

// ActionKind enumerates the mutation actions an action line can produce.
type ActionKind string

const (
	ActionInsert ActionKind = "insert"
	ActionUpdate ActionKind = "update"
	ActionDelete ActionKind = "delete"
	ActionNotify ActionKind = "notify"
)

// PlaceholderCollection is the sentinel collection name substituted
// when an action's id is given without an explicit "collection:" prefix.
const PlaceholderCollection = "__placeholder__"

// Action is one mutation an action line in a rule body produces.
// Fields may contain string values shaped "events.<EventName>.<field>",
// resolved against the firing event at dispatch time.
type Action struct {
	Kind       ActionKind     `json:"kind"`
	Collection string         `json:"collection,omitempty"`
	ID         string         `json:"id,omitempty"`
	Fields     map[string]any `json:"fields,omitempty"`
	Message    string         `json:"message,omitempty"`
}

// Rule is one event-guarded bundle of actions. A rule matches one
// event name; when its condition holds (or is absent) all its actions
// apply in order.
type Rule struct {
	EventName string     `json:"event_name"`
	Condition *Condition `json:"condition,omitempty"`
	Actions   []Action   `json:"actions"`
}

// Trigger is a named, per-contract bundle of parsed rules.
type Trigger struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Description string    `json:"description"`
	DSL         string    `json:"dsl"`
	Rules       []Rule    `json:"rules"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	LastRunAt   time.Time `json:"last_run_at,omitempty"`
}
