package markup

import (
	"testing"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name string
		page string
		want string
	}{
		{"suffix stripped", `<html><head><title>Some Title Here0123456789abc</title></head></html>`, "Some Title Here"},
		{"no title element", `<html><head></head><body><p>hi</p></body></html>`, PlaceholderTitle},
		{"title shorter than suffix", `<html><head><title>Short</title></head></html>`, PlaceholderTitle},
		{"non-breaking space", "<html><head><title>Escape&nbsp;the Bear | ClickHole.</title></head></html>", "Escape the Bear"},
		{"surrounding newlines", "<html><head><title>\n  Escape the Bear | ClickHole.\n</title></head></html>", "Escape the Bear"},
		{"title only suffix", `<html><head><title>0123456789abc</title></head></html>`, PlaceholderTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Title(mustDoc(t, tt.page)); got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStripTitleSuffix_Runes(t *testing.T) {
	// The suffix length counts characters, not bytes.
	got := StripTitleSuffix("Café Crème" + "ééééééééééééé")
	if got != "Café Crème" {
		t.Errorf("StripTitleSuffix() = %q, want %q", got, "Café Crème")
	}
}
