package x11

import "testing"

func TestPickPrimary(t *testing.T) {
	tests := []struct {
		name     string
		monitors []Monitor
		want     string
		wantErr  bool
	}{
		{name: "none", wantErr: true},
		{
			name: "marked primary wins",
			monitors: []Monitor{
				{Name: "DP-1", X: 0, Y: 0},
				{Name: "HDMI-1", X: 1920, Y: 0, Primary: true},
			},
			want: "HDMI-1",
		},
		{
			name: "top-left fallback",
			monitors: []Monitor{
				{Name: "right", X: 1920, Y: 0},
				{Name: "below", X: 0, Y: 1080},
				{Name: "origin", X: 0, Y: 0},
			},
			want: "origin",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pickPrimary(tt.monitors)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("pickPrimary: %v", err)
			}
			if got.Name != tt.want {
				t.Fatalf("got %q, want %q", got.Name, tt.want)
			}
		})
	}
}
