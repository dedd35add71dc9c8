package mail

import "html/template"

// DepartmentLabels maps the booking form's department codes to the
// display names used in alert subjects and bodies.
var DepartmentLabels = map[string]string{
	"loan":       "Loans & Finance",
	"health":     "Health Insurance",
	"life":       "Life Insurance",
	"bike":       "Bike Insurance",
	"car":        "Car Insurance",
	"commercial": "Commercial Vehicle Insurance",
}

func DepartmentLabel(code string) string {
	if label, ok := DepartmentLabels[code]; ok {
		return label
	}
	return code
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`
<div style="font-family:Arial,sans-serif;max-width:540px;margin:0 auto;">
  <div style="background:#1a3c5e;padding:24px 28px;border-radius:12px 12px 0 0;">
    <p style="margin:0;font-size:20px;font-weight:700;color:#fff;">
      Cover<span style="color:#f5a623;">Credit</span>
    </p>
    <p style="margin:4px 0 0;font-size:12px;color:rgba(255,255,255,0.5);">Insurance Advisors — AP &amp; Telangana</p>
  </div>
  <div style="background:#fff;padding:28px;border:1px solid #e5e0d8;border-top:3px solid #e8622a;border-radius:0 0 12px 12px;">
    <p style="font-size:17px;color:#1a3c5e;margin:0 0 8px;">Hi {{.Name}}, you're all set!</p>
    <p style="color:#555;line-height:1.7;margin:0 0 16px;">
      We've received your {{.What}}. Our specialist will call you at your
      preferred time — usually within 2 business hours.
    </p>
    <p style="color:#999;font-size:12px;margin:20px 0 0;">— The Cover Credit Team</p>
  </div>
</div>`))

var alertTmpl = template.Must(template.New("alert").Parse(`
<div style="font-family:Arial,sans-serif;max-width:620px;margin:0 auto;">
  <div style="background:#1a3c5e;padding:20px 28px;">
    <p style="margin:0;font-size:20px;font-weight:700;color:#fff;">
      Cover<span style="color:#f5a623;">Credit</span>
    </p>
  </div>
  <div style="background:#e8622a;padding:12px 28px;">
    <p style="margin:0;font-size:16px;font-weight:700;color:#fff;">{{.Heading}}</p>
  </div>
  <table width="100%" cellpadding="0" cellspacing="0" style="border:1px solid #e5e0d8;">
    {{range .Rows}}
    <tr>
      <td style="padding:10px 16px;font-weight:600;color:#1a3c5e;background:#f8f6f1;border-bottom:1px solid #e5e0d8;width:38%;font-size:13px;">{{.Label}}</td>
      <td style="padding:10px 16px;color:#333;border-bottom:1px solid #e5e0d8;font-size:13px;">{{.Value}}</td>
    </tr>
    {{end}}
  </table>
  <p style="font-size:12px;color:#aaa;padding:12px 0;">
    {{if .Reference}}Ref: {{.Reference}} · {{end}}ID: {{.LeadID}}
  </p>
</div>`))
