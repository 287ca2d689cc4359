package bus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoMsg struct{ Value string }

func (echoMsg) Key() string { return "test.echo" }

func TestSend(t *testing.T) {
	b := NewInMemory()
	Register[echoMsg, string](b, echoMsg{}.Key(), HandlerFunc[echoMsg, string](
		func(ctx context.Context, msg echoMsg) (string, error) {
			return msg.Value, nil
		},
	))

	got, err := Send[echoMsg, string](context.Background(), b, echoMsg{Value: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestSend_UnknownKey(t *testing.T) {
	b := NewInMemory()
	_, err := Send[echoMsg, string](context.Background(), b, echoMsg{})
	assert.ErrorIs(t, err, ErrHandlerNotFound)
}

func TestSend_NilBus(t *testing.T) {
	_, err := Send[echoMsg, string](context.Background(), nil, echoMsg{})
	assert.ErrorIs(t, err, ErrNilBus)
}
