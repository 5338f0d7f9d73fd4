package utils

import "testing"

func TestNormalizeMobile(t *testing.T) {
	cases := map[string]string{
		"0241234567":   "241234567",
		"024 123 4567": "241234567",
		"241234567":    "241234567",
		"0 2 4 1 2 3 4 5 6 7": "241234567",
		"15551234567": "15551234567",
		"":            "",
	}
	for input, want := range cases {
		if got := NormalizeMobile(input); got != want {
			t.Errorf("NormalizeMobile(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestMaskMobile(t *testing.T) {
	if got := MaskMobile("241234567"); got != "24*****67" {
		t.Errorf("MaskMobile = %q", got)
	}
	if got := MaskMobile("123"); got != "123" {
		t.Errorf("short numbers pass through, got %q", got)
	}
}

func TestGenerateReferralCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := GenerateReferralCode()
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		if len(code) != 5 {
			t.Fatalf("expected 5 digits, got %q", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("expected digits only, got %q", code)
			}
		}
	}
}
