/*
templates.go - Message bodies for the HR engine's outbound email

The greeting wording follows the company's existing messaging. Subjects
and bodies are produced together so callers never pair them by hand.
*/
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

var birthdayTmpl = template.Must(template.New("birthday").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <p>Hi {{.Name}},</p>
  <p>Wishing you a very Happy Birthday and a wonderful year ahead!</p>
  <p>Thank you for being a valued part of our team - may this year bring you health, happiness, and success.</p>
  <p>Enjoy your special day!</p>
  <p>Best wishes,<br/>PIXUP TEAM</p>
</div>`))

var anniversaryTmpl = template.Must(template.New("anniversary").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <p>Hi {{.Name}},</p>
  <p>Congratulations on your {{.Years}}-year anniversary with us!</p>
  <p>We truly appreciate your hard work, dedication, and the positive impact you have made on our team.</p>
  <p>Here&#39;s to many more successful years together!</p>
  <p>Best regards,<br/>PIXUP TEAM</p>
</div>`))

var invitationTmpl = template.Must(template.New("invitation").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <p>Hello,</p>
  <p>{{.Inviter}} has invited you to join the PIXUP TEAM workspace.</p>
  <p>Use the link below to set up your account:</p>
  <p><a href="{{.Link}}">{{.Link}}</a></p>
  <p>If you were not expecting this invitation, you can ignore this message.</p>
  <p>Best regards,<br/>PIXUP TEAM</p>
</div>`))

// BirthdayMessage builds the greeting for one matched subject.
func BirthdayMessage(to, name string) Message {
	var buf bytes.Buffer
	_ = birthdayTmpl.Execute(&buf, struct{ Name string }{name})
	return Message{
		To:      []string{to},
		Subject: fmt.Sprintf("Happy Birthday, %s!", name),
		HTML:    buf.String(),
	}
}

// AnniversaryMessage builds the greeting for a work anniversary. The
// years value comes from the matcher unmodified.
func AnniversaryMessage(to, name string, years int) Message {
	var buf bytes.Buffer
	_ = anniversaryTmpl.Execute(&buf, struct {
		Name  string
		Years int
	}{name, years})
	return Message{
		To:      []string{to},
		Subject: fmt.Sprintf("Happy Work Anniversary, %s!", name),
		HTML:    buf.String(),
	}
}

// InvitationMessage builds an invitation email carrying the signup link.
func InvitationMessage(to, inviter, link string) Message {
	if inviter == "" {
		inviter = "Your team"
	}
	var buf bytes.Buffer
	_ = invitationTmpl.Execute(&buf, struct{ Inviter, Link string }{inviter, link})
	return Message{
		To:      []string{to},
		Subject: "You have been invited to join PIXUP TEAM",
		HTML:    buf.String(),
	}
}

// TestMessage is the operator's delivery check.
func TestMessage(to string) Message {
	return Message{
		To:      []string{to},
		Subject: "PIXUP TEAM test email",
		HTML:    "<p>This is a test email from the HR engine. Delivery is working.</p>",
	}
}
