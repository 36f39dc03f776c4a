package booking

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"auditorium/config"
	"auditorium/models"
)

const emailTimeLayout = "Mon, 02 Jan 2006 15:04 MST"

var emailTemplates = template.Must(template.New("booking").Funcs(template.FuncMap{
	"when": func(t time.Time) string { return t.Format(emailTimeLayout) },
	"list": func(items []string) string {
		if len(items) == 0 {
			return "None"
		}
		return strings.Join(items, ", ")
	},
}).Parse(`
{{define "new_request"}}
<p>A new booking has been submitted by <strong>{{.Department}}</strong>.</p>
<p>
<strong>Event:</strong> {{.EventName}} ({{.EventType}})<br>
<strong>Start:</strong> {{when .StartTime}}<br>
<strong>End:</strong> {{when .EndTime}}<br>
<strong>Requirements:</strong> {{list .Requirements}}
</p>
<p>Please log in to the admin panel to review the request.</p>
{{end}}

{{define "status_update"}}
<p><strong>Department:</strong> {{.Department}}</p>
<p><strong>Event:</strong> {{.EventName}}</p>
<p><strong>Status:</strong> {{.Status}}</p>
<p><strong>Time:</strong> {{when .StartTime}} - {{when .EndTime}}</p>
<p><strong>Requirements:</strong> {{list .Requirements}}</p>
<p>Check the dashboard for more info.</p>
{{end}}

{{define "equipment"}}
<p>An event has been approved that requires {{.Route}} setup:</p>
<ul>
<li><strong>Event:</strong> {{.Booking.EventName}}</li>
<li><strong>Department:</strong> {{.Booking.Department}}</li>
<li><strong>Start:</strong> {{when .Booking.StartTime}}</li>
<li><strong>End:</strong> {{when .Booking.EndTime}}</li>
<li><strong>Requirements:</strong> {{list .Booking.Requirements}}</li>
</ul>
{{end}}
`))

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s email: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func newRequestEmail(to []string, b models.Booking) (models.EmailMessage, error) {
	html, err := render("new_request", b)
	if err != nil {
		return models.EmailMessage{}, err
	}
	return models.EmailMessage{To: to, Subject: "New Auditorium Booking Request", HTML: html}, nil
}

func statusUpdateEmail(to []string, b models.Booking) (models.EmailMessage, error) {
	html, err := render("status_update", b)
	if err != nil {
		return models.EmailMessage{}, err
	}
	verdict := "Rejected"
	switch b.Status {
	case models.StatusApproved:
		verdict = "Approved"
	case models.StatusPending:
		verdict = "Returned to Pending"
	}
	return models.EmailMessage{
		To:      to,
		Subject: fmt.Sprintf("Booking %s: %s", verdict, b.EventName),
		HTML:    html,
	}, nil
}

func equipmentEmail(route config.EquipmentRoute, b models.Booking) (models.EmailMessage, error) {
	name := route.Name
	if name == "" {
		name = strings.Join(route.Tags, "/")
	}
	html, err := render("equipment", struct {
		Route   string
		Booking models.Booking
	}{Route: name, Booking: b})
	if err != nil {
		return models.EmailMessage{}, err
	}
	return models.EmailMessage{To: []string{route.Recipient}, Subject: route.Subject, HTML: html}, nil
}
