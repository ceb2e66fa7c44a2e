package pubsub

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// NewLocal creates an in-process bus. Messages published while nobody is
// subscribed to the topic are dropped.
func NewLocal() *Local {
	return &Local{
		GoChannel: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 64},
			NewLogger(log.Default()),
		),
	}
}

var _ PubSubClient = (*Local)(nil)
var _ message.Subscriber = (*Local)(nil)

func (l *Local) SendMessage(topic EventType, data any) error {
	payload, err := msgpack.Marshal(data)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return err
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("eventType", string(topic))
	if err := l.Publish(string(topic), msg); err != nil {
		log.Error("Failed to publish message", "error", err, "topic", topic)
		return err
	}
	log.Debug("SendMessage", "topic", topic, "uuid", msg.UUID)
	return nil
}

func (l *Local) ProcessMessage(data []byte, returnValue any) error {
	return decode(data, returnValue)
}
