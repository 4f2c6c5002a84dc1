package login

import "testing"

func TestValidatePasswordPolicy(t *testing.T) {
	cases := []struct {
		name string
		pwd  string
		ok   bool
	}{
		{name: "valid mixed", pwd: "Abcdef123!xy", ok: true},
		{name: "valid with symbols", pwd: "User123!Strong$", ok: true},
		{name: "short", pwd: "A1!bc", ok: false},
		{name: "long but letters only", pwd: "abcdefghijkl", ok: false},
		{name: "missing symbol", pwd: "Abcdefgh1234", ok: false},
		{name: "missing digit", pwd: "Abcdefghijk!", ok: false},
		{name: "missing upper", pwd: "abcdefgh123!", ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePasswordPolicy(tc.pwd)
			if tc.ok && err != nil {
				t.Fatalf("expected valid password, got error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected policy error")
			}
		})
	}
}
