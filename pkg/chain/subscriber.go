package chain

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/triggr-io/triggr/pkg/decode"
	"github.com/triggr-io/triggr/pkg/log"
	"github.com/triggr-io/triggr/pkg/metadata"
	"github.com/triggr-io/triggr/pkg/types"
)

// Config names the endpoint to subscribe to and the pallet whose
// events the subscriber extracts; every other pallet's events are
// dropped before decoding is attempted.
type Config struct {
	Endpoint   string
	PalletName string
}

// blockBundle is one message off the wire: a block hash plus the
// ordered list of pallet events it contains (spec §6, "Chain source").
type blockBundle struct {
	BlockHash string        `json:"block_hash"`
	Events    []palletEvent `json:"events"`
}

// palletEvent carries a pallet name and its ordered field values. The
// core only ever reads two: a contract address and an opaque payload,
// both hex-encoded byte blobs.
type palletEvent struct {
	PalletName  string   `json:"pallet_name"`
	FieldValues []string `json:"field_values"`
}

// Subscriber maintains the long-lived websocket connection and
// forwards decoded events on Events. Dial failures and malformed
// bundles are logged and the connection is re-driven; they never stop
// the subscriber outright.
type Subscriber struct {
	cfg      Config
	metadata *metadata.Cache
	logger   zerolog.Logger

	Events chan types.ChainEvent

	dial func(url string) (*websocket.Conn, error)
}

// NewSubscriber wires a Subscriber against cfg and the shared metadata
// cache, with an output channel of the bounded capacity spec §5 calls
// for (100).
func NewSubscriber(cfg Config, cache *metadata.Cache) *Subscriber {
	return &Subscriber{
		cfg:      cfg,
		metadata: cache,
		logger:   log.WithComponent("chain"),
		Events:   make(chan types.ChainEvent, 100),
		dial: func(url string) (*websocket.Conn, error) {
			conn, _, err := websocket.DefaultDialer.Dial(url, nil)
			return conn, err
		},
	}
}

// Run dials the endpoint and reads bundles until ctx is cancelled,
// reconnecting on transport errors with a short backoff. It returns
// when ctx is done; the caller is expected to close(Events) afterward
// only once no other goroutine still references it.
func (s *Subscriber) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		conn, err := s.dial(s.cfg.Endpoint)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to dial chain endpoint, retrying")
			if !sleepOrDone(ctx, time.Second) {
				return
			}
			continue
		}

		s.readLoop(ctx, conn)
		_ = conn.Close()

		if ctx.Err() != nil {
			return
		}
		s.logger.Warn().Msg("chain subscription dropped, reconnecting")
		if !sleepOrDone(ctx, time.Second) {
			return
		}
	}
}

func (s *Subscriber) readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		if ctx.Err() != nil {
			return
		}

		_, raw, err := conn.ReadMessage()
		if err != nil {
			s.logger.Error().Err(err).Msg("chain read failed")
			return
		}

		var bundle blockBundle
		if err := json.Unmarshal(raw, &bundle); err != nil {
			s.logger.Warn().Err(err).Msg("malformed event bundle, skipping")
			continue
		}

		for _, ev := range bundle.Events {
			s.handleEvent(ctx, ev)
		}
	}
}

func (s *Subscriber) handleEvent(ctx context.Context, ev palletEvent) {
	if ev.PalletName != s.cfg.PalletName {
		return
	}
	if len(ev.FieldValues) != 2 {
		s.logger.Warn().Str("pallet", ev.PalletName).Msg("event has unexpected field count, skipping")
		return
	}

	addrBytes, err := decodeHexBlob(ev.FieldValues[0])
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to decode contract address, skipping event")
		return
	}
	payload, err := decodeHexBlob(ev.FieldValues[1])
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to decode event payload, skipping event")
		return
	}

	address := "0x" + strings.ToLower(hex.EncodeToString(addrBytes))

	meta, ok := s.metadata.Get(address)
	if !ok {
		s.logger.Debug().Str("address", address).Msg("no metadata registered for contract, skipping event")
		return
	}

	data, err := decode.Decode(payload, &meta)
	if err != nil {
		s.logger.Warn().Err(err).Str("address", address).Msg("event decode failed, skipping")
		return
	}

	select {
	case s.Events <- types.ChainEvent{ContractAddress: address, Event: data}:
	case <-ctx.Done():
	}
}

func decodeHexBlob(s string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(s, "0x"))
}

func sleepOrDone(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
