package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintString(t *testing.T) {
	assert.Equal(t, FingerprintString("t1.a"), FingerprintString("t1.a"))
	assert.NotEqual(t, FingerprintString("t1.a"), FingerprintString("t1.b"))
	assert.Equal(t, U64("x"), FingerprintString("x"))
}

func TestMixAllIsOrderSensitive(t *testing.T) {
	a, b := U64("a"), U64("b")
	assert.NotEqual(t, MixAll(0, a, b), MixAll(0, b, a))
	assert.Equal(t, MixAll(7), uint64(7))
}
