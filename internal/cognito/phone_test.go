package cognito

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"4155550132", "+14155550132"},
		{"415-555-0132", "+14155550132"},
		{"(415) 555-0132", "+14155550132"},
		{"415.555.0132", "+14155550132"},
		{" 1 415 555 0132 ", "+14155550132"},
		{"+1 415 555 0132", "+14155550132"},
		{"+44 7911 123456", "+447911123456"},
		{"+353 87 123 4567", "+353871234567"},

		{"", ""},
		{"415555013", ""},
		{"0132", ""},
		{"coach@rovers.example", ""},
		{"4155550132@sms.example", ""},
		{"+rovers@example.com", ""},
		{"ext4155550132", ""},
		{"415abc5550132", ""},
		{"++14155550132", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizePhone(tt.input); got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if got := IsPhoneNumber(tt.input); got != (tt.want != "") {
				t.Errorf("IsPhoneNumber(%q) = %v", tt.input, got)
			}
		})
	}
}

func TestRegionFromPoolID(t *testing.T) {
	region, err := regionFromPoolID("eu-west-2_AbCdEf")
	if err != nil {
		t.Fatalf("region: %v", err)
	}
	if region != "eu-west-2" {
		t.Fatalf("expected eu-west-2, got %q", region)
	}
	if _, err := regionFromPoolID("nopool"); err == nil {
		t.Fatalf("expected error for malformed pool id")
	}
}

func TestUserAttributesSkipsInvalidPhone(t *testing.T) {
	attrs := userAttributes(NewUser{Email: "ref@example.com", FullName: "Ref", Phone: "not a phone", Role: "match_official"})
	names := make(map[string]string, len(attrs))
	for _, attr := range attrs {
		names[*attr.Name] = *attr.Value
	}
	if _, ok := names["phone_number"]; ok {
		t.Fatalf("expected invalid phone to be skipped")
	}
	if names["custom:role"] != "match_official" {
		t.Fatalf("expected role attribute, got %v", names)
	}
}
