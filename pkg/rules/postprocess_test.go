package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostprocessUnwrapsSomeAndOk(t *testing.T) {
	assert.Equal(t, uint64(42), postprocess("Some(42)"))
	assert.Equal(t, uint64(42), postprocess("Ok(42)"))
	assert.Equal(t, uint64(42), postprocess("Some(Ok(42))"))
}

func TestPostprocessNoneAndNullAreNil(t *testing.T) {
	assert.Nil(t, postprocess("None"))
	assert.Nil(t, postprocess("null"))
}

func TestPostprocessBooleans(t *testing.T) {
	assert.Equal(t, true, postprocess("true"))
	assert.Equal(t, false, postprocess("false"))
}

func TestPostprocessNegativeInteger(t *testing.T) {
	assert.Equal(t, int64(-5), postprocess("-5"))
}

func TestPostprocessLargeUnsignedKeptAsString(t *testing.T) {
	huge := "340282366920938463463374607431768211455" // max u128
	assert.Equal(t, huge, postprocess(huge))
}

func TestPostprocessFloat(t *testing.T) {
	assert.InDelta(t, 3.14, postprocess("3.14"), 0.0001)
}

func TestPostprocessQuotedStringTrimmed(t *testing.T) {
	assert.Equal(t, "hello", postprocess(`"hello"`))
}

func TestPostprocessPlainStringPassesThrough(t *testing.T) {
	assert.Equal(t, "not_a_number", postprocess("not_a_number"))
}
