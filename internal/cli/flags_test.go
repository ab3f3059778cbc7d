package cli

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumFlag(t *testing.T) {
	var level string
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	enumFlag(fs, &level, "level", "beginner", "level", "", levelNames())
	assert.Equal(t, "beginner", level)

	require.NoError(t, fs.Parse([]string{"--level", " Advanced "}))
	assert.Equal(t, "advanced", level)

	err := fs.Set("level", "expert")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "beginner, intermediate, advanced")
	assert.Equal(t, "advanced", level)

	assert.Equal(t, "level", fs.Lookup("level").Value.Type())
}
