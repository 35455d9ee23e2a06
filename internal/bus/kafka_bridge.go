package bus

import (
	"context"
	"encoding/json"
	"log"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// KafkaBridge relays cart-changed signals between storefront surfaces that do
// not share a process, the cross-tab analog. Each surface publishes its local
// signals to the topic and republishes remote ones on its own bus. Ordering
// is best effort, observers re-read the store idempotently either way.
type KafkaBridge struct {
	bus       *Bus
	writer    *kafka.Writer
	reader    *kafka.Reader
	surfaceID string
	applying  atomic.Bool // true while republishing a remote signal

	unsubscribe func()
}

type bridgeMessage struct {
	SurfaceID string `json:"surface_id"`
	Signal    Signal `json:"signal"`
}

func NewKafkaBridge(b *Bus, topic string, brokers ...string) *KafkaBridge {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  "storefront-surface-" + uuid.NewString(),
		MaxBytes: 1e6,
	})

	bridge := &KafkaBridge{
		bus:       b,
		writer:    writer,
		reader:    reader,
		surfaceID: uuid.NewString(),
	}
	bridge.unsubscribe = b.Subscribe(SignalCartChanged, func() {
		if bridge.applying.Load() {
			// This signal is a remote one being republished, don't echo
			// it back
			return
		}
		// The bus delivers synchronously; keep the broker write off the
		// publisher's goroutine
		go bridge.publishLocal(SignalCartChanged)
	})
	return bridge
}

// Run consumes remote signals until ctx is cancelled.
func (k *KafkaBridge) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		m, err := k.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() == nil {
				log.Printf("bridge read error: %v", err)
			}
			continue
		}
		k.handleMessage(m.Value)
	}
}

func (k *KafkaBridge) Close() {
	k.unsubscribe()
	if err := k.reader.Close(); err != nil {
		log.Printf("error closing bridge reader: %v", err)
	}
	if err := k.writer.Close(); err != nil {
		log.Printf("error closing bridge writer: %v", err)
	}
}

func (k *KafkaBridge) publishLocal(sig Signal) {
	payload, err := json.Marshal(bridgeMessage{SurfaceID: k.surfaceID, Signal: sig})
	if err != nil {
		log.Printf("bridge marshal error: %v", err)
		return
	}

	if err := k.writer.WriteMessages(context.Background(), kafka.Message{Value: payload}); err != nil {
		log.Printf("bridge publish error: %v", err)
	}
}

func (k *KafkaBridge) handleMessage(data []byte) {
	var msg bridgeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("bridge parse error: %v", err)
		return
	}
	if msg.SurfaceID == k.surfaceID {
		return // our own message coming back around
	}
	if msg.Signal == "" {
		log.Printf("bridge message missing signal")
		return
	}

	k.applying.Store(true)
	k.bus.Publish(msg.Signal)
	k.applying.Store(false)
}
