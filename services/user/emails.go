package user

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"auditorium/models"
)

var emailTemplates = template.Must(template.New("user").Parse(`
{{define "hod_credentials"}}
<h3>Welcome, {{.Name}}!</h3>
<p>Your HOD account for the {{.Department}} department has been created.</p>
<p><strong>Username:</strong> {{.Username}}</p>
<p><strong>Password:</strong> {{.Password}}</p>
<p>Please change your password after your first login.</p>
<p>Regards,<br/>Auditorium Booking Team</p>
{{end}}

{{define "admin_otp"}}
<p>Hello {{.Name}},</p>
<p>Your password reset code is <strong>{{.OTP}}</strong>. It expires in {{.Minutes}} minutes.</p>
<p>If you did not request a reset you can ignore this email.</p>
{{end}}

{{define "hod_reset_request"}}
<p>HOD <strong>{{.Name}}</strong> ({{.Username}}, {{.Department}}) has requested a password reset.</p>
<p>Please log in and reset it from the admin panel.</p>
{{end}}

{{define "hod_new_password"}}
<p>Hello {{.Name}},</p>
<p>An admin has reset your password. Your new password is <strong>{{.Password}}</strong>.</p>
{{end}}
`))

func renderEmail(name string, to []string, subject string, data any) (models.EmailMessage, error) {
	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return models.EmailMessage{}, fmt.Errorf("render %s email: %w", name, err)
	}
	return models.EmailMessage{To: to, Subject: subject, HTML: strings.TrimSpace(buf.String())}, nil
}
