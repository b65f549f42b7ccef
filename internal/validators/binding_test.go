package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestCustomTags(t *testing.T) {
	v := validator.New()
	if err := v.RegisterValidation("ymd", isDate); err != nil {
		t.Fatal(err)
	}
	if err := v.RegisterValidation("phone", isPhone); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		tag   string
		value string
		ok    bool
	}{
		{"ymd", "2025-03-10", true},
		{"ymd", "2025-02-30", false},
		{"ymd", "10/03/2025", false},
		{"phone", "+90 (532) 123-4567", true},
		{"phone", "555", false},
		{"phone", "call me", false},
	}

	for _, tt := range tests {
		err := v.Var(tt.value, tt.tag)
		if (err == nil) != tt.ok {
			t.Errorf("%s(%q): expected ok=%v, got %v", tt.tag, tt.value, tt.ok, err)
		}
	}
}
