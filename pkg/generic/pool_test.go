package generic_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zeusync/wildcatch/pkg/generic"
)

func TestPoolResetsOnPut(t *testing.T) {
	created := 0
	p := generic.NewPool(func() *bytes.Buffer {
		created++
		return new(bytes.Buffer)
	}, (*bytes.Buffer).Reset)

	buf := p.Get()
	assert.Equal(t, 1, created)
	buf.WriteString("frame")
	p.Put(buf)
	assert.Zero(t, buf.Len())

	again := p.Get()
	assert.Zero(t, again.Len())
}

func TestPoolWithoutReset(t *testing.T) {
	p := generic.NewPool(func() []int { return make([]int, 0, 4) }, nil)
	s := p.Get()
	assert.Equal(t, 4, cap(s))
	p.Put(append(s, 1))
}
