package result

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOkAndFail(t *testing.T) {
	ok := Ok("done")
	assert.True(t, ok.Success)
	assert.Equal(t, "done", ok.Message)

	f := Fail("nope")
	assert.False(t, f.Success)
	assert.Equal(t, "nope", f.Message)
}

func TestDataResults(t *testing.T) {
	ok := OkData([]int{1, 2}, "listed")
	assert.True(t, ok.Success)
	assert.Equal(t, []int{1, 2}, ok.Data)

	type thing struct{ ID int }
	f := FailData[*thing]("missing")
	assert.False(t, f.Success)
	assert.Nil(t, f.Data)

	neg := FailDataWith(false, "password mismatch")
	assert.False(t, neg.Success)
	assert.False(t, neg.Data)
	assert.Equal(t, "password mismatch", neg.Message)
}
