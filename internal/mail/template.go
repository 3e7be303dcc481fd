package mail

import "fmt"

// WrapInTemplate puts the report body into the outer email shell. Email
// clients want table layouts and inline styles, so the shell stays plain.
func WrapInTemplate(reportHTML, siteURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="de">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Ihre Website-Analyse</title>
</head>
<body style="margin:0;padding:0;background-color:#f4f4f7;font-family:Arial,Helvetica,sans-serif;">
<table role="presentation" width="100%%" cellpadding="0" cellspacing="0" style="background-color:#f4f4f7;">
<tr><td align="center" style="padding:24px 12px;">
<table role="presentation" width="600" cellpadding="0" cellspacing="0" style="max-width:600px;width:100%%;background-color:#ffffff;border-radius:8px;overflow:hidden;">
<tr><td style="background-color:#111827;padding:20px 32px;">
<span style="color:#ffffff;font-size:18px;font-weight:bold;">arsenio.at</span>
<span style="color:#9ca3af;font-size:13px;float:right;padding-top:3px;">Website-Analyse f&uuml;r %s</span>
</td></tr>
<tr><td style="padding:32px;">
%s
</td></tr>
<tr><td style="background-color:#f9fafb;padding:20px 32px;border-top:1px solid #e5e7eb;">
<p style="margin:0;color:#6b7280;font-size:12px;">
Diese Analyse wurde automatisch erstellt. Fragen? Einfach auf diese E-Mail antworten.
</p>
</td></tr>
</table>
</td></tr>
</table>
</body>
</html>`, siteURL, reportHTML)
}
