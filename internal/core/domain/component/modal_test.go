package component

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"cordial/internal/core/domain"
)

func modalSubmission(modal *Modal, creator *recordingCreator, rows ...domain.ComponentRow) *domain.Interaction {
	ix := &domain.Interaction{
		ID:    "ix1",
		Type:  domain.InteractionModalSubmit,
		Token: "tok",
		Data: &domain.InteractionData{
			CustomID:   modal.ModalCustomID(),
			Components: rows,
		},
	}
	ix.AttachResponder(creator.create)
	return ix
}

func TestModalRejectsTooManyChildren(t *testing.T) {
	modal := NewModal("Form", 0)

	for i := 0; i < 5; i++ {
		require.NoError(t, modal.AddItem(NewTextInput("field")))
	}

	err := modal.AddItem(NewTextInput("one too many"))
	require.ErrorIs(t, err, domain.ErrTooManyChildren)
	assert.Len(t, modal.Children(), 5)
}

func TestModalInjectsFieldsBeforeHandler(t *testing.T) {
	defer goleak.VerifyNone(t)

	input := NewTextInput("Name").WithCustomID("name")
	modal := NewModal("Form", 0)
	modal.MustAddItem(input)

	got := make(chan string, 1)
	modal.Handler = func(ctx context.Context, ix *domain.Interaction) error {
		v, _ := input.Value()
		got <- v
		return ix.Response.SendMessage(ctx, &domain.MessagePayload{Content: "ok"})
	}

	creator := &recordingCreator{}
	ix := modalSubmission(modal, creator, domain.ComponentRow{
		Type: domain.ComponentActionRow,
		Components: []domain.SubmittedField{
			{Type: domain.ComponentTextInput, CustomID: "name", Value: "ada"},
		},
	})

	require.True(t, modal.Dispatch(context.Background(), ix))

	select {
	case v := <-got:
		assert.Equal(t, "ada", v)
	case <-time.After(time.Second):
		t.Fatal("handler never ran")
	}
}

func TestModalUnknownFieldIsSkipped(t *testing.T) {
	defer goleak.VerifyNone(t)

	input := NewTextInput("Name").WithCustomID("name")
	modal := NewModal("Form", 0)
	modal.MustAddItem(input)

	done := make(chan struct{})
	modal.Handler = func(ctx context.Context, ix *domain.Interaction) error {
		defer close(done)
		_, ok := input.Value()
		assert.False(t, ok)
		return ix.Response.SendMessage(ctx, &domain.MessagePayload{Content: "ok"})
	}

	ix := modalSubmission(modal, &recordingCreator{}, domain.ComponentRow{
		Type: domain.ComponentActionRow,
		Components: []domain.SubmittedField{
			{Type: domain.ComponentTextInput, CustomID: "other", Value: "x"},
		},
	})

	require.True(t, modal.Dispatch(context.Background(), ix))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler never ran")
	}
}

func TestModalSubmissionFinishesModal(t *testing.T) {
	defer goleak.VerifyNone(t)

	modal := NewModal("Form", time.Hour)
	modal.MustAddItem(NewTextInput("field"))
	modal.Handler = func(ctx context.Context, ix *domain.Interaction) error {
		return ix.Response.SendMessage(ctx, &domain.MessagePayload{Content: "ok"})
	}
	modal.StartListening(nil)

	require.True(t, modal.Dispatch(context.Background(), modalSubmission(modal, &recordingCreator{})))

	timedOut, err := modal.Wait(context.Background())
	require.NoError(t, err)
	assert.False(t, timedOut)
}

func TestModalDispatchAfterStop(t *testing.T) {
	modal := NewModal("Form", 0)
	modal.Stop()

	assert.False(t, modal.Dispatch(context.Background(), modalSubmission(modal, &recordingCreator{})))
}

func TestModalTimeoutFiresOnce(t *testing.T) {
	defer goleak.VerifyNone(t)

	var fired atomic.Int32
	modal := NewModal("Form", 20*time.Millisecond)
	modal.OnTimeout = func() { fired.Add(1) }
	modal.StartListening(nil)

	timedOut, err := modal.Wait(context.Background())
	require.NoError(t, err)
	assert.True(t, timedOut)

	modal.Stop()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestModalToModalPayload(t *testing.T) {
	modal := NewModal("Feedback", 0).WithCustomID("fb")
	modal.MustAddItem(NewTextInput("Your thoughts").WithCustomID("thoughts"))

	payload := modal.ToModalPayload()

	assert.Equal(t, "Feedback", payload["title"])
	assert.Equal(t, "fb", payload["custom_id"])
	rows, ok := payload["components"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, rows, 1)
}

func TestTextInputValueDistinguishesUnsubmitted(t *testing.T) {
	input := NewTextInput("Name").WithInitial("draft")

	_, submitted := input.Value()
	assert.False(t, submitted)

	input.inject(domain.SubmittedField{Type: domain.ComponentTextInput, CustomID: input.CustomID(), Value: ""})
	v, submitted := input.Value()
	assert.True(t, submitted)
	assert.Equal(t, "", v)
}
