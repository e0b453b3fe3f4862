package discovery

import "testing"

func TestDefaultGRPCAddr(t *testing.T) {
	cases := map[string]string{
		ServiceCompiler:       "compiler:8095",
		" " + ServiceCompiler: "compiler:8095",
		"unknown":             "",
		"":                    "",
	}
	for service, want := range cases {
		if got := DefaultGRPCAddr(service); got != want {
			t.Fatalf("DefaultGRPCAddr(%q) = %q, want %q", service, got, want)
		}
	}
}

func TestOrDefaultGRPCAddr(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{value: "", want: "compiler:8095"},
		{value: "  ", want: "compiler:8095"},
		{value: "localhost:9000", want: "localhost:9000"},
	}
	for _, tt := range tests {
		if got := OrDefaultGRPCAddr(tt.value, ServiceCompiler); got != tt.want {
			t.Fatalf("OrDefaultGRPCAddr(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}
