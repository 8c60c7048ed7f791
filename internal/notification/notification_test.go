package notification

import (
	"context"
	"encoding/json"
	"errors"
	"net/smtp"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cristiand11/portfolio-sub001/internal/models"
)

type recordingSink struct {
	mu   sync.Mutex
	msgs []Message
	err  error
}

func (s *recordingSink) Send(_ context.Context, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
	return s.err
}

func sampleAppointment() *models.Appointment {
	return &models.Appointment{
		ID:              12,
		DoctorID:        1,
		PatientID:       2,
		Date:            time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 30,
	}
}

func TestDispatcher_AssignsIDsAndDelivers(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink, zerolog.Nop())

	d.Notify(Message{RecipientID: 1, To: "a@x.io"}, Message{ID: "fixed", RecipientID: 2, To: "b@x.io"})
	d.Close()

	require.Len(t, sink.msgs, 2)
	assert.NotEmpty(t, sink.msgs[0].ID)
	assert.Equal(t, "fixed", sink.msgs[1].ID)
}

func TestDispatcher_FailuresAreSwallowed(t *testing.T) {
	sink := &recordingSink{err: errors.New("smtp down")}
	d := NewDispatcher(sink, zerolog.Nop())

	d.Notify(Message{To: "a@x.io"})
	d.Close()

	assert.Len(t, sink.msgs, 1)
}

func TestDispatcher_NotifyAfterCloseIsDropped(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink, zerolog.Nop())
	d.Close()

	assert.NotPanics(t, func() {
		d.Notify(Message{To: "a@x.io"})
		d.Close()
	})
	assert.Empty(t, sink.msgs)
}

func TestCompose(t *testing.T) {
	ap := sampleAppointment()
	doctor := &models.User{ID: 1, Email: "doc@clinic.io"}
	noMail := &models.User{ID: 2}

	msgs := Compose(EventConfirmed, ap, doctor, noMail, nil)

	require.Len(t, msgs, 1)
	assert.Equal(t, "doc@clinic.io", msgs[0].To)
	assert.Equal(t, "Appointment confirmed", msgs[0].Subject)
	assert.Contains(t, msgs[0].Body, "2026-03-02 at 10:00")
}

func TestCompose_RescheduleMentionsProposal(t *testing.T) {
	ap := sampleAppointment()
	d := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	tm := "15:00"
	ap.ProposedDate, ap.ProposedTime = &d, &tm

	msgs := Compose(EventRescheduleRequested, ap, &models.User{ID: 2, Email: "p@x.io"})

	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Body, "2026-03-04 at 15:00")
}

func TestSMTPSink_Send(t *testing.T) {
	s := NewSMTPSink("localhost", 1025, "")

	var gotAddr string
	var gotTo []string
	var gotMsg string
	s.send = func(addr string, _ smtp.Auth, _ string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, string(msg)
		return nil
	}

	err := s.Send(context.Background(), Message{ID: "m1", To: "p@x.io", Subject: "Hi", Body: "there"})

	require.NoError(t, err)
	assert.Equal(t, "localhost:1025", gotAddr)
	assert.Equal(t, []string{"p@x.io"}, gotTo)
	assert.Contains(t, gotMsg, "Subject: Hi\r\n")
	assert.Contains(t, gotMsg, "From: no-reply@clinic.local")
}

type fakeWriter struct {
	msgs []kafka.Message
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func TestKafkaSink_Send(t *testing.T) {
	w := &fakeWriter{}
	s := &KafkaSink{writer: w}

	err := s.Send(context.Background(), Message{ID: "m1", RecipientID: 42, To: "p@x.io", Subject: "Hi"})
	require.NoError(t, err)

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "42", string(w.msgs[0].Key))

	var decoded Message
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &decoded))
	assert.Equal(t, "m1", decoded.ID)
	assert.Equal(t, "p@x.io", decoded.To)
}
