package db

import (
	"testing"

	"github.com/BruksfildServices01/barber-booking/internal/config"
)

func TestDialectorByDriver(t *testing.T) {
	cases := []struct {
		driver  string
		name    string
		wantErr bool
	}{
		{driver: "postgres", name: "postgres"},
		{driver: "mysql", name: "mysql"},
		{driver: "sqlite", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.driver, func(t *testing.T) {
			d, err := dialector(&config.Config{DBDriver: tc.driver, DBUrl: "dsn"})
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.Name() != tc.name {
				t.Errorf("expected %s, got %s", tc.name, d.Name())
			}
		})
	}
}
