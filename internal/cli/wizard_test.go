package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeeksFromInput(t *testing.T) {
	w, err := weeksFromInput("", 8)
	require.NoError(t, err)
	assert.Equal(t, 8, w)

	w, err = weeksFromInput(" 12 ", 8)
	require.NoError(t, err)
	assert.Equal(t, 12, w)

	_, err = weeksFromInput("0", 8)
	assert.Error(t, err)
	_, err = weeksFromInput("53", 8)
	assert.Error(t, err)
	_, err = weeksFromInput("ten", 8)
	assert.Error(t, err)
}

func TestValidators(t *testing.T) {
	assert.NoError(t, validateWeeks(""))
	assert.NoError(t, validateWeeks("52"))
	assert.Error(t, validateWeeks("-1"))

	assert.NoError(t, validateOptionalDate(""))
	assert.NoError(t, validateOptionalDate("2026-03-02"))
	assert.Error(t, validateOptionalDate("2026-13-02"))
	assert.Error(t, validateOptionalDate("tomorrow"))

	req := validateRequired("skill")
	assert.NoError(t, req("Go"))
	err := req("  ")
	require.Error(t, err)
	assert.Equal(t, "skill is required", err.Error())
}

func TestWizardFormsBuild(t *testing.T) {
	var g goalWizardValues
	assert.NotNil(t, goalWizardForm(&g))
	var p promptWizardValues
	assert.NotNil(t, promptWizardForm(&p))
	var start string
	assert.NotNil(t, startDateForm(&start))
	assert.Len(t, levelOptions(), 3)
}
