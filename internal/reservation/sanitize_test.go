package reservation

import "testing"

func TestFormatCardNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"1234", "1234"},
		{"12345678", "1234 5678"},
		{"4111111111111111", "4111 1111 1111 1111"},
		{"4111 1111 1111 1111", "4111 1111 1111 1111"},
		{"  4111\t1111 ", "4111 1111"},
		{"123", "123"},
	}

	for _, tt := range tests {
		if got := FormatCardNumber(tt.raw); got != tt.want {
			t.Errorf("FormatCardNumber(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestFormatCardExpiry(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"1", "1"},
		{"12", "12/"},
		{"122", "12/2"},
		{"1226", "12/26"},
		{"12/26", "12/26"},
		{"12-26", "12/26"},
		{"122634", "12/26"}, // excess digits cut at MM/YY
		{"ab12cd26", "12/26"},
	}

	for _, tt := range tests {
		if got := FormatCardExpiry(tt.raw); got != tt.want {
			t.Errorf("FormatCardExpiry(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestFormatCVV(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"123", "123"},
		{"12a3", "123"},
		{" 1 2 3 ", "123"},
		{"abc", ""},
	}

	for _, tt := range tests {
		if got := FormatCVV(tt.raw); got != tt.want {
			t.Errorf("FormatCVV(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

// Sanitizers are deterministic: re-running the transform on its own output
// changes nothing.
func TestSanitizers_StableOnOwnOutput(t *testing.T) {
	inputs := []string{"4111111111111111", "1226", "123"}

	if once := FormatCardNumber(inputs[0]); FormatCardNumber(once) != once {
		t.Error("FormatCardNumber not stable")
	}
	if once := FormatCardExpiry(inputs[1]); FormatCardExpiry(once) != once {
		t.Error("FormatCardExpiry not stable")
	}
	if once := FormatCVV(inputs[2]); FormatCVV(once) != once {
		t.Error("FormatCVV not stable")
	}
}
