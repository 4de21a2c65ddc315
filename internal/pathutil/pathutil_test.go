package pathutil

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty",
			in:   "",
			want: "/",
		},
		{
			name: "root",
			in:   "/",
			want: "/",
		},
		{
			name: "collapses slash runs and trailing slash",
			in:   "//api///users/",
			want: "/api/users",
		},
		{
			name: "already normalized",
			in:   "/api/users",
			want: "/api/users",
		},
		{
			name: "only slashes",
			in:   "///",
			want: "/",
		},
		{
			name: "trailing slash",
			in:   "/api/",
			want: "/api",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"", "/", "//api///users/", "/a/b/c", "api//x/", "///"}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestCombine(t *testing.T) {
	tests := []struct {
		name string
		base string
		sub  string
		want string
	}{
		{
			name: "both empty",
			base: "",
			sub:  "",
			want: "/",
		},
		{
			name: "empty sub",
			base: "/api/users",
			sub:  "",
			want: "/api/users",
		},
		{
			name: "empty base",
			base: "",
			sub:  "posts",
			want: "/posts",
		},
		{
			name: "plain join",
			base: "/api",
			sub:  "posts",
			want: "/api/posts",
		},
		{
			name: "trailing and leading slashes",
			base: "/api/",
			sub:  "/posts",
			want: "/api/posts",
		},
		{
			name: "base without leading slash",
			base: "api",
			sub:  "posts",
			want: "/api/posts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Combine(tt.base, tt.sub); got != tt.want {
				t.Errorf("Combine(%q, %q) = %q, want %q", tt.base, tt.sub, got, tt.want)
			}
		})
	}
}

func TestIsParameterSegment(t *testing.T) {
	tests := []struct {
		segment string
		want    bool
	}{
		{"{id}", true},
		{":id", true},
		{"*", true},
		{"file*", true},
		{"user{id}", true},
		{"users", false},
		{"", false},
		{"v1", false},
	}

	for _, tt := range tests {
		t.Run(tt.segment, func(t *testing.T) {
			if got := IsParameterSegment(tt.segment); got != tt.want {
				t.Errorf("IsParameterSegment(%q) = %v, want %v", tt.segment, got, tt.want)
			}
		})
	}
}
