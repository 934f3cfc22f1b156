package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farwill/travel-booking/internal/queue"
)

func TestRenderEventWelcome(t *testing.T) {
	render := RenderEvent("https://app.example.com")

	subject, body, err := render(queue.EmailEvent{Kind: queue.KindWelcome, To: "ada@example.com", Name: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "Welcome to Farwill Travel", subject)
	assert.Contains(t, body, "Welcome, Ada!")
	assert.Contains(t, body, "https://app.example.com/dashboard")
}

func TestRenderEventPasswordReset(t *testing.T) {
	render := RenderEvent("https://app.example.com")

	_, body, err := render(queue.EmailEvent{
		Kind:     queue.KindPasswordReset,
		ResetURL: "https://app.example.com/reset-password/abc123",
	})
	require.NoError(t, err)
	assert.Contains(t, body, "https://app.example.com/reset-password/abc123")
	assert.Contains(t, body, "10 minutes")
}

func TestRenderEventReservationPaid(t *testing.T) {
	render := RenderEvent("")

	subject, body, err := render(queue.EmailEvent{
		Kind:      queue.KindReservationPaid,
		Reference: "PSK_123",
		PlanLabel: "4 star, 6 nights, 2 people",
		Total:     150000,
	})
	require.NoError(t, err)
	assert.Contains(t, subject, "Confirmed")
	assert.Contains(t, body, "PSK_123")
	assert.Contains(t, body, "4 star, 6 nights, 2 people")
	assert.Contains(t, body, "150000")
}

func TestRenderEventTicketReply(t *testing.T) {
	render := RenderEvent("")

	_, body, err := render(queue.EmailEvent{
		Kind:    queue.KindTicketReplied,
		Message: "Where is my receipt?",
		Reply:   "It was re-sent to your inbox.",
		Status:  "closed",
	})
	require.NoError(t, err)
	assert.Contains(t, body, "Where is my receipt?")
	assert.Contains(t, body, "It was re-sent to your inbox.")
	assert.Contains(t, body, "closed")
}

func TestRenderEventEscapesUserContent(t *testing.T) {
	render := RenderEvent("")

	_, body, err := render(queue.EmailEvent{
		Kind:    queue.KindTicketReplied,
		Message: `<script>alert("x")</script>`,
		Reply:   "ok",
		Status:  "closed",
	})
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestRenderEventUnknownKind(t *testing.T) {
	render := RenderEvent("")

	_, _, err := render(queue.EmailEvent{Kind: "something.else"})
	assert.Error(t, err)
}
