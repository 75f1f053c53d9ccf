package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-c", "conf.json", "-a", ":50051"},
			allowed: []string{"-c"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "equals form",
			args:    []string{"--config=alt.json", "-a", ":50051"},
			allowed: []string{"--config"},
			want:    []string{"--config=alt.json"},
		},
		{
			name:    "unknown flags and positionals dropped",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "flag at the end keeps no value",
			args:    []string{"-d"},
			allowed: []string{"-d"},
			want:    []string{"-d"},
		},
		{
			name:    "next flag is not a value",
			args:    []string{"-d", "-s", "secret"},
			allowed: []string{"-d", "-s"},
			want:    []string{"-d", "-s", "secret"},
		},
		{
			name:    "value looking like a flag in equals form",
			args:    []string{"--config=--weird.json"},
			allowed: []string{"--config"},
			want:    []string{"--config=--weird.json"},
		},
		{
			name:    "repeated flag preserved in order",
			args:    []string{"-l", "debug", "-l", "info"},
			allowed: []string{"-l"},
			want:    []string{"-l", "debug", "-l", "info"},
		},
		{
			name:    "empty",
			args:    nil,
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "/etc/ixt/short.json", ConfigPath([]string{"-c", "/etc/ixt/short.json"}))
	assert.Equal(t, "/etc/ixt/long.json", ConfigPath([]string{"-a", ":1", "-config", "/etc/ixt/long.json"}))
	assert.Equal(t, "/2.json", ConfigPath([]string{"-c", "/1.json", "-config=/2.json"}))
	assert.Empty(t, ConfigPath([]string{"-x", "1"}))
	assert.Empty(t, ConfigPath(nil))
}
