package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanRegister_Open(t *testing.T) {
	e := &Event{RegistrationOpen: true, Capacity: 100}
	assert.Equal(t, Open, CanRegister(e, 0))
	assert.Equal(t, Open, CanRegister(e, 99))
}

func TestCanRegister_Full(t *testing.T) {
	e := &Event{RegistrationOpen: true, Capacity: 50}
	assert.Equal(t, Full, CanRegister(e, 50))
	assert.Equal(t, Full, CanRegister(e, 51))
}

func TestCanRegister_ClosedByOrganizer(t *testing.T) {
	e := &Event{RegistrationOpen: false, Capacity: 50}
	assert.Equal(t, ClosedByOrganizer, CanRegister(e, 0))
}

func TestCanRegister_ClosedWinsOverFull(t *testing.T) {
	// A closed event that is also at capacity reports closed, not full.
	e := &Event{RegistrationOpen: false, Capacity: 10}
	assert.Equal(t, ClosedByOrganizer, CanRegister(e, 10))
}

func TestCanRegister_UnlimitedCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		e := &Event{RegistrationOpen: true, Capacity: capacity}
		assert.Equal(t, Open, CanRegister(e, 100000))
	}
}
