package scrape

import "testing"

func TestExtractContactLinks(t *testing.T) {
	html := `<body>
<a href="mailto:office@salon.at?subject=Termin">Mail</a>
<a href="tel:+43 1 234 56 78">Anrufen</a>
<a href="https://www.facebook.com/salonmuster">Facebook</a>
<a href="https://instagram.com/salonmuster">Instagram</a>
<form><input type="email" name="email"></form>
</body>`
	contact := ExtractContact(mustDoc(t, html), html, "")
	if len(contact.Emails) != 1 || contact.Emails[0] != "office@salon.at" {
		t.Fatalf("emails = %v", contact.Emails)
	}
	if len(contact.Phones) != 1 {
		t.Fatalf("phones = %v", contact.Phones)
	}
	if len(contact.SocialLinks) != 2 {
		t.Fatalf("social = %v", contact.SocialLinks)
	}
	if !contact.HasContactForm {
		t.Fatalf("contact form not detected")
	}
}

func TestExtractContactDeduplicates(t *testing.T) {
	html := `<a href="mailto:office@salon.at">Mail</a><p>office@salon.at</p>` +
		`<a href="tel:+4312345678">A</a>`
	text := "Rufen Sie an: +43 1 234 5678"
	contact := ExtractContact(mustDoc(t, html), html, text)
	if len(contact.Emails) != 1 {
		t.Fatalf("emails = %v, want deduplicated", contact.Emails)
	}
	if len(contact.Phones) != 1 {
		t.Fatalf("phones = %v, want deduplicated by digits", contact.Phones)
	}
}

func TestExtractContactSkipsAssetFilenames(t *testing.T) {
	html := `<img srcset="logo@2x.png 2x" src="logo.png">`
	contact := ExtractContact(mustDoc(t, html), html, "")
	if len(contact.Emails) != 0 {
		t.Fatalf("emails = %v, want none from srcset", contact.Emails)
	}
	if contact.HasContactForm {
		t.Fatalf("no form on page")
	}
}
