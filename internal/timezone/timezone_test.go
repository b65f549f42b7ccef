package timezone

import "testing"

func TestLocation(t *testing.T) {
	if got := Location("America/Sao_Paulo").String(); got != "America/Sao_Paulo" {
		t.Errorf("expected America/Sao_Paulo, got %s", got)
	}
	if got := Location("Mars/Olympus").String(); got != DefaultTimezone {
		t.Errorf("invalid zone should fall back to %s, got %s", DefaultTimezone, got)
	}
	if IsValid("") {
		t.Error("empty zone is not valid")
	}
}
