package langid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	d := NewDetector()

	res, err := d.Detect("The quick brown fox jumps over the lazy dog near the riverbank.")
	require.NoError(t, err)
	assert.Equal(t, "en", res.Code)
	assert.Equal(t, "English", res.Language)

	res, err = d.Detect("Le renard brun rapide saute par-dessus le chien paresseux près de la rivière.")
	require.NoError(t, err)
	assert.Equal(t, "fr", res.Code)
	assert.Equal(t, "French", res.Language)
}

func TestDetectEmpty(t *testing.T) {
	d := NewDetector()

	_, err := d.Detect("")
	assert.ErrorIs(t, err, ErrEmptyText)
	_, err = d.Detect("   \n\t ")
	assert.ErrorIs(t, err, ErrEmptyText)
}
