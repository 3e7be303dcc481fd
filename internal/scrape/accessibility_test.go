package scrape

import "testing"

func TestAuditAccessibilityGoodPage(t *testing.T) {
	html := `<body>
<a href="#main">Zum Inhalt springen</a>
<nav></nav>
<main>
<form>
<label for="email">E-Mail</label><input type="email" id="email">
<input type="text" aria-label="Name">
</form>
</main>
</body>`
	a11y := AuditAccessibility(mustDoc(t, html))
	if !a11y.HasSkipLink || !a11y.HasLandmarks {
		t.Fatalf("got %+v", a11y)
	}
	if a11y.UnlabeledInputs != 0 || a11y.PositiveTabindex != 0 {
		t.Fatalf("got %+v, want no issues", a11y)
	}
}

func TestAuditAccessibilityFindsIssues(t *testing.T) {
	html := `<body>
<div>
<input type="text" name="name">
<textarea name="message"></textarea>
<button tabindex="3">Senden</button>
<a tabindex="0" href="/">Start</a>
</div>
</body>`
	a11y := AuditAccessibility(mustDoc(t, html))
	if a11y.HasSkipLink || a11y.HasLandmarks {
		t.Fatalf("got %+v, want no skip link or landmarks", a11y)
	}
	if a11y.UnlabeledInputs != 2 {
		t.Fatalf("unlabeled = %d, want 2", a11y.UnlabeledInputs)
	}
	if a11y.PositiveTabindex != 1 {
		t.Fatalf("positive tabindex = %d, want 1 (tabindex 0 is fine)", a11y.PositiveTabindex)
	}
}
