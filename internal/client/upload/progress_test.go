package upload

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func collect() (*[]int, Func) {
	var got []int
	return &got, func(v int) { got = append(got, v) }
}

func TestProgress_TwoPhase(t *testing.T) {
	got, fn := collect()
	p := NewProgress(DefaultPolicy(), fn)

	p.Start()
	p.Transferred(25, 100)
	p.Transferred(25, 100)
	p.Transferred(100, 100)
	p.TransferComplete()
	p.TransferComplete()
	p.Transferred(100, 100)
	p.Succeeded()
	p.Transferred(100, 100)

	assert.Equal(t, []int{0, 20, 79, 80, 100}, *got)
	assert.Equal(t, 100, p.Last())
}

func TestProgress_SuccessWithoutTransferSignalStillPins(t *testing.T) {
	got, fn := collect()
	p := NewProgress(Policy{TransferWeight: 0.6}, fn)

	p.Start()
	p.Succeeded()

	assert.Equal(t, []int{0, 60, 100}, *got)
}

func TestProgress_FailureStopsEmitting(t *testing.T) {
	got, fn := collect()
	p := NewProgress(DefaultPolicy(), fn)

	p.Start()
	p.Transferred(10, 100)
	p.Failed()
	p.TransferComplete()
	p.Succeeded()

	assert.Equal(t, []int{0, 8}, *got)
}

func TestProgress_NilFunc(t *testing.T) {
	p := NewProgress(DefaultPolicy(), nil)
	p.Start()
	p.TransferComplete()
	p.Succeeded()
	assert.Equal(t, 100, p.Last())
}
