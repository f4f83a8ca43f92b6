package fs

import "testing"

func TestIsNavigationRoot(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{`C:\`, true},
		{`D:`, true},
		{`c:/`, true},
		{`\\server\share\`, true},
		{`\\server\share`, true},
		{`\\server\share\folder`, false},
		{`C:\Users`, false},
		{"/", true},
		{"/home", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsNavigationRoot(tt.path); got != tt.want {
			t.Fatalf("IsNavigationRoot(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestParentForNavigation(t *testing.T) {
	tests := []struct {
		path   string
		want   string
		wantOK bool
	}{
		{`C:\Users\me`, `C:\Users`, true},
		{`C:\Users`, `C:\`, true},
		{`C:\`, "", false},
		{`\\server\share\folder`, `\\server\share`, true},
		{`\\server\share`, "", false},
		{"/home/me/", "/home", true},
		{"/home", "/", true},
		{"/", "", false},
		{"relative", "", false},
	}
	for _, tt := range tests {
		got, ok := ParentForNavigation(tt.path)
		if got != tt.want || ok != tt.wantOK {
			t.Fatalf("ParentForNavigation(%q) = (%q, %v), want (%q, %v)", tt.path, got, ok, tt.want, tt.wantOK)
		}
	}
}
