package common

import "testing"

func TestSanitizeURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"clean", "https://example.com", "https://example.com"},
		{"whitespace", "  https://example.com  ", "https://example.com"},
		{"trailing comma", "https://example.com,", "https://example.com"},
		{"wrapping parens", "(https://example.com)", "https://example.com"},
		{"markdown link", "[site](https://example.com/path)", "https://example.com/path"},
		{"quoted", `"https://example.com"`, "https://example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeURL(tt.in); got != tt.want {
				t.Errorf("SanitizeURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"valid", "https://example.com/about", "https://example.com/about", false},
		{"scheme added", "example.com", "https://example.com", false},
		{"empty", "   ", "", true},
		{"spaces inside", "https://example.com/a b", "", true},
		{"malformed host", "https://exa{}mple.com", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateURL(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("want error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
