package mailer

import (
	"fmt"

	"github.com/farwill/travel-booking/internal/queue"
)

// RenderEvent maps a queue event to a rendered subject and HTML body.  It
// is handed to the queue consumer as its Renderer.
func RenderEvent(clientURL string) queue.Renderer {
	return func(ev queue.EmailEvent) (string, string, error) {
		switch ev.Kind {
		case queue.KindWelcome:
			s, b := WelcomeBody(ev.Name, clientURL)
			return s, b, nil
		case queue.KindPasswordReset:
			s, b := PasswordResetBody(ev.ResetURL)
			return s, b, nil
		case queue.KindReservationPaid:
			s, b := ReservationPaidBody(ev.PlanLabel, ev.Reference, ev.Total)
			return s, b, nil
		case queue.KindTicketReplied:
			s, b := TicketReplyBody(ev.Message, ev.Reply, ev.Status)
			return s, b, nil
		default:
			return "", "", fmt.Errorf("unknown email event kind %q", ev.Kind)
		}
	}
}
