package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// ---- log ----

type LogSink struct {
	logger zerolog.Logger
}

func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Send(_ context.Context, msg Message) error {
	s.logger.Info().
		Str("message_id", msg.ID).
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Msg(msg.Body)
	return nil
}

// ---- smtp ----

// SMTPSink sends plain-text mail through an unauthenticated relay.
type SMTPSink struct {
	addr string
	from string
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPSink(host string, port int, from string) *SMTPSink {
	from = strings.TrimSpace(from)
	if from == "" {
		from = "no-reply@clinic.local"
	}
	return &SMTPSink{
		addr: strings.TrimSpace(host) + ":" + strconv.Itoa(port),
		from: from,
		send: smtp.SendMail,
	}
}

func (s *SMTPSink) Send(_ context.Context, msg Message) error {
	return s.send(s.addr, nil, s.from, []string{msg.To}, []byte(buildMail(s.from, msg)))
}

func buildMail(from string, msg Message) string {
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMessage-ID: <%s@clinic>\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		from,
		msg.To,
		msg.Subject,
		msg.ID,
		msg.Body,
	)
}

// ---- kafka ----

type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink publishes messages as JSON keyed by recipient so that one
// recipient's messages stay ordered within a partition.
type KafkaSink struct {
	writer kafkaWriter
}

func NewKafkaSink(brokers []string, topic string) *KafkaSink {
	return &KafkaSink{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		},
	}
}

func (s *KafkaSink) Send(ctx context.Context, msg Message) error {
	value, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(msg.RecipientID), 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "message_id", Value: []byte(msg.ID)},
		},
	})
}

func (s *KafkaSink) Close() error {
	return s.writer.Close()
}
