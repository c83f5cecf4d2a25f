package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	var buf bytes.Buffer

	cmd := newVersionCmd()
	cmd.SetOut(&buf)
	cmd.Run(cmd, nil)

	got := buf.String()
	require.NotEmpty(t, got)
	assert.Contains(t, got, "version")
}
