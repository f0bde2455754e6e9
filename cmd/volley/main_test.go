package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMain_ExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"version", []string{"volley", "--version"}, 0},
		{"unknown command", []string{"volley", "fire"}, 1},
		{"invalid requests", []string{"volley", "run", "-n", "0"}, 1},
	}

	original := os.Args
	t.Cleanup(func() { os.Args = original })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			assert.Equal(t, tt.want, Main())
		})
	}
}
