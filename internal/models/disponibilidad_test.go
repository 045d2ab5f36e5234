package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoxesList(t *testing.T) {
	d := Disponibilidad{Boxes: "1,2,5"}
	assert.Equal(t, []int{1, 2, 5}, d.BoxesList())

	d = Disponibilidad{Boxes: " 3 , 7 "}
	assert.Equal(t, []int{3, 7}, d.BoxesList())

	d = Disponibilidad{Boxes: ""}
	assert.Empty(t, d.BoxesList())

	d = Disponibilidad{Boxes: "1,x,4"}
	assert.Equal(t, []int{1, 4}, d.BoxesList())
}

func TestIncluyeBox(t *testing.T) {
	d := Disponibilidad{Boxes: "1,2,5"}
	assert.True(t, d.IncluyeBox(2))
	assert.False(t, d.IncluyeBox(3))

	// sin lista, todos los boxes quedan habilitados
	abierta := Disponibilidad{Boxes: ""}
	assert.True(t, abierta.IncluyeBox(8))
}
