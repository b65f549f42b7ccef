package models

import "testing"

func TestAppointmentStatusValue(t *testing.T) {
	for _, st := range []AppointmentStatus{StatusPending, StatusApproved, StatusRejected} {
		v, err := st.Value()
		if err != nil {
			t.Fatalf("value %d: %v", st, err)
		}
		if v.(int64) != int64(st) {
			t.Errorf("expected %d, got %v", st, v)
		}
	}

	if _, err := AppointmentStatus(3).Value(); err == nil {
		t.Error("expected error for status 3")
	}
}

func TestAppointmentStatusScan(t *testing.T) {
	tests := []struct {
		name    string
		src     any
		want    AppointmentStatus
		wantErr bool
	}{
		{"int64", int64(1), StatusApproved, false},
		{"bytes", []byte("2"), StatusRejected, false},
		{"string", "0", StatusPending, false},
		{"out of range", int64(7), 0, true},
		{"negative", int64(-1), 0, true},
		{"garbage", []byte("x"), 0, true},
		{"unsupported", 1.5, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var st AppointmentStatus
			err := st.Scan(tt.src)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if st != tt.want {
				t.Errorf("expected %s, got %s", tt.want, st)
			}
		})
	}
}

func TestAppointmentStatusString(t *testing.T) {
	if StatusApproved.String() != "approved" {
		t.Errorf("unexpected label %q", StatusApproved.String())
	}
	if AppointmentStatus(9).String() != "unknown" {
		t.Errorf("unexpected label %q", AppointmentStatus(9).String())
	}
}

func TestAppointmentBeforeCreateAssignsGuestToken(t *testing.T) {
	ap := &Appointment{}
	if err := ap.BeforeCreate(nil); err != nil {
		t.Fatal(err)
	}
	if len(ap.GuestToken) != 36 {
		t.Fatalf("expected uuid token, got %q", ap.GuestToken)
	}

	kept := &Appointment{GuestToken: "preset"}
	_ = kept.BeforeCreate(nil)
	if kept.GuestToken != "preset" {
		t.Errorf("existing token overwritten: %q", kept.GuestToken)
	}
}
