package mailer

import (
	"fmt"
	"html"
)

// The HTML bodies below follow the house email style: green header bar,
// white card, footer line.  They are deliberately simple table-free
// fragments so every mail client renders them the same way.

const bodyWrap = `<div style="font-family: Arial, Helvetica, sans-serif; background:#f4f4f4; padding:20px;">
  <div style="max-width:600px; margin:0 auto; background:#ffffff;">
	<div style="padding:24px; text-align:center; background:#0a6319; color:#ffffff;">
	  <h1 style="margin:0;">Farwill Travel</h1>
	</div>
	<div style="padding:32px 24px; color:#333333; font-size:16px; line-height:1.6;">%s</div>
	<div style="padding:16px; text-align:center; font-size:12px; color:#999999;">&copy; Farwill Travel. All rights reserved.</div>
  </div>
</div>`

func wrap(inner string) string { return fmt.Sprintf(bodyWrap, inner) }

// WelcomeBody greets a newly registered user and links to the dashboard.
func WelcomeBody(name, clientURL string) (subject, body string) {
	inner := fmt.Sprintf(`<h2 style="color:#0a6319; margin-top:0;">Welcome, %s!</h2>
<p>Your account has been created and you're all set to start planning your trip.</p>
<p style="text-align:center; margin-top:24px;">
  <a href="%s/dashboard" style="background:#0a6319; color:#ffffff; padding:12px 24px; text-decoration:none; font-weight:bold; border-radius:5px; display:inline-block;">Go to Your Dashboard</a>
</p>`, html.EscapeString(name), clientURL)
	return "Welcome to Farwill Travel", wrap(inner)
}

// PasswordResetBody carries the time-limited reset link.
func PasswordResetBody(resetURL string) (subject, body string) {
	inner := fmt.Sprintf(`<h2 style="color:#0a6319; margin-top:0;">Password Reset Request</h2>
<p>You requested a password reset for your Farwill Travel account.</p>
<p>Click the button below to reset your password. The link is valid for the next <strong>10 minutes</strong>.</p>
<p style="text-align:center; margin-top:24px;">
  <a href="%s" style="background:#0a6319; color:#ffffff; padding:12px 24px; text-decoration:none; font-weight:bold; border-radius:5px; display:inline-block;">Reset Your Password</a>
</p>`, resetURL)
	return "Farwill Travel Password Reset", wrap(inner)
}

// ReservationPaidBody confirms a verified booking.
func ReservationPaidBody(planLabel, reference string, total int64) (subject, body string) {
	inner := fmt.Sprintf(`<h2 style="color:#0a6319; margin-top:0;">Booking Confirmed</h2>
<p>Your payment has been verified and your reservation is confirmed.</p>
<div style="margin:20px 0; padding:15px; border-left:4px solid #0a6319; background:#f1fef4;">
  <p style="margin:5px 0;"><strong>Plan:</strong> %s</p>
  <p style="margin:5px 0;"><strong>Total:</strong> %d</p>
  <p style="margin:5px 0;"><strong>Payment reference:</strong> %s</p>
</div>
<p>Keep the payment reference for your records.</p>`,
		html.EscapeString(planLabel), total, html.EscapeString(reference))
	return "Your Farwill Travel Booking is Confirmed", wrap(inner)
}

// TicketReplyBody mirrors the support team's reply next to the original
// message, matching the support-desk email layout.
func TicketReplyBody(message, reply, status string) (subject, body string) {
	inner := fmt.Sprintf(`<h2 style="color:#0a6319; margin-top:0;">Farwill Travel Support Team</h2>
<p>Hello,</p>
<p>We have reviewed your support request and here is our response:</p>
<div style="margin:20px 0; padding:15px; border-left:4px solid #f0b939; background:#f9f9f9;">
  <p><strong>Your Message:</strong></p>
  <p style="margin:5px 0; font-style:italic;">"%s"</p>
</div>
<div style="margin:20px 0; padding:15px; border-left:4px solid #0a6319; background:#f1fef4;">
  <p><strong>Our Reply:</strong></p>
  <p style="margin:5px 0;">%s</p>
</div>
<p>Status of your ticket: <strong>%s</strong></p>
<p style="margin-top:20px;">Thank you for reaching out to us. If you need further assistance, simply reply to this email.</p>`,
		html.EscapeString(message), html.EscapeString(reply), html.EscapeString(status))
	return "Support Ticket Reply - Farwill Travel", wrap(inner)
}
