package placeholder

import (
	"reflect"
	"strings"
	"testing"
)

// TestDetectEmpty verifies that empty text yields an empty, non-nil result.
func TestDetectEmpty(t *testing.T) {
	got := Detect("")
	if got == nil {
		t.Fatal("Detect(\"\") returned nil, want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("Detect(\"\") = %v, want empty", got)
	}
}

// TestDetectCatalogOrder checks that results follow catalog order even
// when tokens appear in a different order in the text.
func TestDetectCatalogOrder(t *testing.T) {
	text := "Mã hợp đồng: {Mã hợp đồng}\nKhách hàng: {Tên khách hàng}"
	got := Detect(text)
	want := []string{"{Tên khách hàng}", "{Mã hợp đồng}"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Detect() = %v, want %v", got, want)
	}
}

// TestDetectNoDuplicates ensures repeated occurrences yield one entry.
func TestDetectNoDuplicates(t *testing.T) {
	text := strings.Repeat("{Email} ", 5)
	got := Detect(text)
	if len(got) != 1 || got[0] != "{Email}" {
		t.Errorf("Detect() = %v, want [{Email}]", got)
	}
}

// TestDetectIdempotent verifies running detection twice on the same text
// produces the same ordered set.
func TestDetectIdempotent(t *testing.T) {
	text := "Hợp đồng cho {Tên khách hàng}, mã {Mã khách hàng}, thuế {Mã số thuế}"
	first := Detect(text)
	second := Detect(text)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Detect not idempotent: %v then %v", first, second)
	}
}

// TestDetectNoPartialMatch ensures fragments of a token don't match.
func TestDetectNoPartialMatch(t *testing.T) {
	text := "Tên khách hàng without braces, {Tên khách, {Email"
	if got := Detect(text); len(got) != 0 {
		t.Errorf("Detect() = %v, want empty", got)
	}
}

// TestDetectAllTokens runs detection over a text containing the entire catalog.
func TestDetectAllTokens(t *testing.T) {
	text := strings.Join(Catalog, "\n")
	got := Detect(text)
	if !reflect.DeepEqual(got, Catalog) {
		t.Errorf("Detect() = %v, want full catalog", got)
	}
}
