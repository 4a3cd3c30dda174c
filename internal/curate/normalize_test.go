package curate

import "testing"

func TestNormalizeTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"[HOT] Deal: Echo Dot (50% OFF) - $19.99", "Echo Dot"},
		{"[GPU] RTX 4070 Super 12GB", "RTX 4070 Super 12GB"},
		{"Amazon Deal: Anker Power Bank - $25", "Anker Power Bank"},
		{"hot deal: Robot Vacuum (30% off)", "Robot Vacuum"},
		{"Echo   Dot\t2nd  Gen", "Echo Dot 2nd Gen"},
		{"Mechanical Keyboard - $49.99", "Mechanical Keyboard"},
		{"Plain Title", "Plain Title"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeTitle(c.in); got != c.want {
			t.Errorf("NormalizeTitle(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeTitleKeepsInlineDiscountText(t *testing.T) {
	// Only the parenthesized "(N% OFF)" form is an annotation; a bare
	// percentage inside the title is product text and stays.
	got := NormalizeTitle("Charger 30% faster than stock")
	if got != "Charger 30% faster than stock" {
		t.Errorf("unexpected rewrite: %q", got)
	}
}
