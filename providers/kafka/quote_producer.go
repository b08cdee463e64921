package kafka

import (
	"context"
	"encoding/json"
	"github.com/segmentio/kafka-go"
	"gitlab.com/aoterocom/AOOptionsTicket/models"
	"time"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// QuoteProducer publishes computed quotes to a topic, keyed by instrument so a consumer sees
// the quotes of one instrument in order
type QuoteProducer struct {
	writer messageWriter
}

func NewQuoteProducer(brokers []string, topic string) *QuoteProducer {
	return &QuoteProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			RequiredAcks: kafka.RequireAll,
			Async:        false,
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

func (p *QuoteProducer) PublishQuote(ctx context.Context, quote models.Quote) error {
	value, err := json.Marshal(quote.Summary())
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(quote.Instrument.Hex()),
		Value: value,
	})
}

func (p *QuoteProducer) Close() error {
	return p.writer.Close()
}
