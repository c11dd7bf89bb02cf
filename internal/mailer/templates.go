package mailer

import (
	"bytes"
	"html/template"
)

var verificationTmpl = template.Must(template.New("verification").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
      <h1>Welcome to Zara AI!</h1>
      <p>Hi {{.FirstName}},</p>
      <p>Thank you for creating your Zara AI account! To get started, please verify your email address:</p>
      <p><a href="{{.Link}}" style="display: inline-block; padding: 12px 30px; background: #667eea; color: white; text-decoration: none; border-radius: 25px;">Verify My Account</a></p>
      <p>Or copy and paste this link into your browser:</p>
      <p style="word-break: break-all; color: #667eea;">{{.Link}}</p>
      <p><strong>This verification link will expire in 24 hours.</strong></p>
      <p>If you didn't create this account, please ignore this email.</p>
    </div>
  </body>
</html>`))

var resetTmpl = template.Must(template.New("reset").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
      <h1>Password Reset Request</h1>
      <p>Hi {{.FirstName}},</p>
      <p>We received a request to reset the password for your Zara AI account. Click the button below to choose a new password:</p>
      <p><a href="{{.Link}}" style="display: inline-block; padding: 12px 30px; background: #667eea; color: white; text-decoration: none; border-radius: 25px;">Reset My Password</a></p>
      <p>Or copy and paste this link into your browser:</p>
      <p style="word-break: break-all; color: #667eea;">{{.Link}}</p>
      <p><strong>This reset link will expire in 10 minutes.</strong></p>
      <p>If you didn't request a password reset, you can safely ignore this email.</p>
    </div>
  </body>
</html>`))

var welcomeTmpl = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
      <h1>Your account is verified!</h1>
      <p>Hi {{.FirstName}},</p>
      <p>Your email address has been verified and your Zara AI account is ready to use.</p>
      <p><a href="{{.Link}}" style="display: inline-block; padding: 12px 30px; background: #667eea; color: white; text-decoration: none; border-radius: 25px;">Go to Zara AI</a></p>
      <p>Welcome aboard!<br>The Zara AI Team</p>
    </div>
  </body>
</html>`))

type templateData struct {
	FirstName string
	Link      string
}

func renderVerification(firstName, link string) (string, error) {
	return render(verificationTmpl, templateData{FirstName: firstName, Link: link})
}

func renderReset(firstName, link string) (string, error) {
	return render(resetTmpl, templateData{FirstName: firstName, Link: link})
}

func renderWelcome(firstName, link string) (string, error) {
	return render(welcomeTmpl, templateData{FirstName: firstName, Link: link})
}

func render(tmpl *template.Template, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
