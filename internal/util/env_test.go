package util

import "testing"

func TestEnvDefault(t *testing.T) {
	t.Setenv("FITFLOW_TEST_STR", "")
	if got := EnvDefault("FITFLOW_TEST_STR", "fallback"); got != "fallback" {
		t.Errorf("EnvDefault with empty var = %q, want fallback", got)
	}
	t.Setenv("FITFLOW_TEST_STR", "set")
	if got := EnvDefault("FITFLOW_TEST_STR", "fallback"); got != "set" {
		t.Errorf("EnvDefault with set var = %q, want set", got)
	}
}

func TestParseBoolEnv(t *testing.T) {
	cases := []struct {
		name     string
		value    string
		fallback bool
		want     bool
	}{
		{"unset uses default", "", true, true},
		{"true", "true", false, true},
		{"numeric one", "1", false, true},
		{"yes with spaces", "  yes ", false, true},
		{"uppercase on", "ON", false, true},
		{"false", "false", true, false},
		{"zero", "0", true, false},
		{"off", "off", true, false},
		{"garbage uses default", "maybe", true, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Setenv("FITFLOW_TEST_BOOL", c.value)
			if got := ParseBoolEnv("FITFLOW_TEST_BOOL", c.fallback); got != c.want {
				t.Errorf("ParseBoolEnv(%q, %v) = %v, want %v", c.value, c.fallback, got, c.want)
			}
		})
	}
}
