package scrape

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRe = regexp.MustCompile(`\+?[0-9][0-9 ()/\-]{6,}[0-9]`)
)

var socialHosts = []string{
	"facebook.com", "instagram.com", "linkedin.com", "youtube.com",
	"tiktok.com", "twitter.com", "x.com", "pinterest.com", "xing.com",
}

const maxContactEntries = 5

// ExtractContact collects emails, phone numbers and social profiles from a
// page. Emails come from mailto links and the raw source; phones only from
// tel links and the visible text, to keep tracking IDs and timestamps out.
func ExtractContact(doc *goquery.Document, html, text string) Contact {
	contact := Contact{
		Emails:      []string{},
		Phones:      []string{},
		SocialLinks: []string{},
	}

	seenMail := make(map[string]struct{})
	addEmail := func(raw string) {
		mail := strings.ToLower(strings.TrimSpace(raw))
		if mail == "" || looksLikeAsset(mail) {
			return
		}
		if _, dup := seenMail[mail]; dup || len(contact.Emails) >= maxContactEntries {
			return
		}
		seenMail[mail] = struct{}{}
		contact.Emails = append(contact.Emails, mail)
	}

	seenPhone := make(map[string]struct{})
	addPhone := func(raw string) {
		phone := strings.TrimSpace(raw)
		if digitCount(phone) < 7 {
			return
		}
		key := digitsOnly(phone)
		if _, dup := seenPhone[key]; dup || len(contact.Phones) >= maxContactEntries {
			return
		}
		seenPhone[key] = struct{}{}
		contact.Phones = append(contact.Phones, phone)
	}

	seenSocial := make(map[string]struct{})
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		switch {
		case strings.HasPrefix(href, "mailto:"):
			addr, _, _ := strings.Cut(strings.TrimPrefix(href, "mailto:"), "?")
			addEmail(addr)
		case strings.HasPrefix(href, "tel:"):
			addPhone(strings.TrimPrefix(href, "tel:"))
		default:
			lower := strings.ToLower(href)
			for _, host := range socialHosts {
				if !strings.Contains(lower, host+"/") && !strings.HasSuffix(lower, host) {
					continue
				}
				if _, dup := seenSocial[host]; dup || len(contact.SocialLinks) >= maxContactEntries {
					break
				}
				seenSocial[host] = struct{}{}
				contact.SocialLinks = append(contact.SocialLinks, href)
				break
			}
		}
	})

	for _, match := range emailRe.FindAllString(html, -1) {
		addEmail(match)
	}
	for _, match := range phoneRe.FindAllString(text, -1) {
		addPhone(match)
	}

	doc.Find("form").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if sel.Find(`input[type="email"], textarea`).Length() > 0 {
			contact.HasContactForm = true
			return false
		}
		return true
	})

	return contact
}

// looksLikeAsset filters image filenames that match the email pattern, e.g.
// logo@2x.png in srcset attributes.
func looksLikeAsset(mail string) bool {
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg"} {
		if strings.HasSuffix(mail, ext) {
			return true
		}
	}
	return false
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

func digitsOnly(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
