package slug

import "testing"

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Men":                     "men",
		"  Tops & Tees ":          "tops-tees",
		"Levi's® 501 -- Original": "levi-s-501-original",
		"---":                     "",
		"ÄBC":                     "bc",
	}
	for input, want := range cases {
		if got := Make(input); got != want {
			t.Fatalf("Make(%q) want %q got %q", input, want, got)
		}
	}
}

func TestForProduct(t *testing.T) {
	if got := ForProduct("Classic Denim Jacket", 13842); got != "classic-denim-jacket-13842" {
		t.Fatalf("unexpected product slug: %s", got)
	}
	if got := ForProduct("!!!", 7); got != "7" {
		t.Fatalf("empty base should fall back to id, got %s", got)
	}
}
