package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/alloycomp/internal/cli"
	"github.com/rshade/alloycomp/pkg/version"
)

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		assert.NotEmpty(t, version.GetVersion())
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version.GetVersion())
		if assert.NotNil(t, root) {
			assert.Equal(t, "alloycomp", root.Use)
			assert.Equal(t, version.GetVersion(), root.Version)
		}
	})
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error returns 0", err: nil, want: 0},
		{name: "generic error", err: errors.New("boom"), want: 1},
		{name: "wrapped sentinel", err: errors.Join(errors.New("outer"), cli.ErrNoComposition), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
