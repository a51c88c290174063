package domain

import "testing"

func TestRecord_Featured(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{" yes ", true},
		{"false", false},
		{"0", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := (Record{IsFeatured: tt.raw}).Featured(); got != tt.want {
			t.Errorf("Featured(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestRecord_ProductStatus(t *testing.T) {
	t.Parallel()

	if got := (Record{}).ProductStatus(); got != ProductStatusActive {
		t.Errorf("blank status = %q, want active", got)
	}
	if got := (Record{Status: " Discontinued "}).ProductStatus(); got != ProductStatusDiscontinued {
		t.Errorf("status = %q, want discontinued", got)
	}
	if (Record{Status: "archived"}).ProductStatus().IsValid() {
		t.Error("archived should not be a valid status")
	}
}

func TestRecord_PrimaryMediaURL(t *testing.T) {
	t.Parallel()

	if got := (Record{}).PrimaryMediaURL(); got != "" {
		t.Errorf("PrimaryMediaURL() = %q, want empty", got)
	}
	r := Record{MediaURLs: []string{"https://a/1.jpg", "https://a/2.jpg"}}
	if got := r.PrimaryMediaURL(); got != "https://a/1.jpg" {
		t.Errorf("PrimaryMediaURL() = %q", got)
	}
}

func TestRecord_Text(t *testing.T) {
	t.Parallel()

	r := Record{FR: LocalizedText{Name: "Pinces"}, EN: LocalizedText{Name: "Forceps"}}
	if r.Text(LanguageFR).Name != "Pinces" || r.Text(LanguageEN).Name != "Forceps" {
		t.Errorf("Text() returned wrong language: %+v", r)
	}
}
