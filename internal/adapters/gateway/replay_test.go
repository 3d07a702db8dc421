package gateway

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDispatchesEachLine(t *testing.T) {
	input := strings.Join([]string{
		`{"id": "1", "type": 1}`,
		``,
		`# a comment`,
		`  {"id": "2", "type": 2}  `,
	}, "\n")

	var events []string
	replay := NewReplay(strings.NewReader(input))

	err := replay.Run(context.Background(), func(_ context.Context, raw []byte) {
		events = append(events, string(raw))
	})

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, `{"id": "1", "type": 1}`, events[0])
	assert.Equal(t, `{"id": "2", "type": 2}`, events[1])
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var count int
	replay := NewReplay(strings.NewReader("{\"a\":1}\n{\"b\":2}\n"))

	err := replay.Run(ctx, func(_ context.Context, _ []byte) {
		count++
		cancel()
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, count)
}

func TestRunEmptyInput(t *testing.T) {
	replay := NewReplay(strings.NewReader(""))

	err := replay.Run(context.Background(), func(_ context.Context, _ []byte) {
		t.Error("dispatch ran on empty input")
	})

	require.NoError(t, err)
}
