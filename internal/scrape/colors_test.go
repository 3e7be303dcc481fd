package scrape

import "testing"

func TestExtractColorsFiltersBoring(t *testing.T) {
	html := `<style>body{color:#ffffff;background:#000000;border:#808080}</style><div style="color:#e91e63"></div>`
	colors := ExtractColors(html)
	if len(colors) != 1 || colors[0] != "#e91e63" {
		t.Fatalf("got %v, want [#e91e63]", colors)
	}
}

func TestExtractColorsBrandWeight(t *testing.T) {
	// #123456 appears twice in plain markup, #e91e63 once but in a button rule.
	html := `<style>.btn{background:#e91e63}</style><div style="color:#123456"></div><span style="color:#123456"></span>`
	colors := ExtractColors(html)
	if len(colors) < 2 {
		t.Fatalf("got %v, want two colors", colors)
	}
	if colors[0] != "#e91e63" {
		t.Fatalf("brand color should rank first, got %v", colors)
	}
}

func TestExtractColorsShortHex(t *testing.T) {
	colors := ExtractColors(`<div style="color:#f60"></div>`)
	if len(colors) != 1 || colors[0] != "#ff6600" {
		t.Fatalf("got %v, want [#ff6600]", colors)
	}
}

func TestExtractColorsCapsAtTen(t *testing.T) {
	html := ""
	palette := []string{"#e91e01", "#e91e02", "#e91e03", "#e91e04", "#e91e05", "#e91e06",
		"#e91e07", "#e91e08", "#e91e09", "#e91e10", "#e91e11", "#e91e12"}
	for _, c := range palette {
		html += `<i style="color:` + c + `"></i>`
	}
	colors := ExtractColors(html)
	if len(colors) != 10 {
		t.Fatalf("got %d colors, want 10", len(colors))
	}
}

func TestIsBoringColor(t *testing.T) {
	cases := []struct {
		hex  string
		want bool
	}{
		{"#ffffff", true},
		{"#000000", true},
		{"#888888", true},
		{"#fafafa", true},
		{"#0a0a0a", true},
		{"#e91e63", false},
		{"#1976d2", false},
	}
	for _, tc := range cases {
		if got := isBoringColor(tc.hex); got != tc.want {
			t.Fatalf("isBoringColor(%s) = %v, want %v", tc.hex, got, tc.want)
		}
	}
}
