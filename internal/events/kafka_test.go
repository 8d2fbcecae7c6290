package events

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func header(m kafka.Message, key string) string {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{w: w}

	e, err := New("reservation.confirmed", "b-1", map[string]string{"status": "confirmed"})
	require.NoError(t, err)
	require.NoError(t, p.Publish(context.Background(), e))

	require.Len(t, w.msgs, 1)
	m := w.msgs[0]
	assert.Equal(t, "b-1", string(m.Key))
	assert.JSONEq(t, `{"status":"confirmed"}`, string(m.Value))
	assert.Equal(t, e.ID, header(m, "event_id"))
	assert.Equal(t, "reservation.confirmed", header(m, "event_type"))
}

func TestKafkaPublisher_Errors(t *testing.T) {
	p := &KafkaPublisher{w: &fakeWriter{err: errors.New("broker down")}}
	e, err := New("reservation.pending", "b-2", struct{}{})
	require.NoError(t, err)

	assert.ErrorContains(t, p.Publish(context.Background(), e), "broker down")
	assert.NoError(t, p.Publish(context.Background()))
}

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, SplitBrokers(" a:9092, ,b:9092 "))
	assert.Nil(t, SplitBrokers(""))
}

func TestNew_BadPayload(t *testing.T) {
	_, err := New("x", "k", make(chan int))
	assert.Error(t, err)
}
