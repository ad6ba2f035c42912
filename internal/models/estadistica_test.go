package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTasaExito(t *testing.T) {
	tests := []struct {
		name     string
		exitos   int64
		fallos   int64
		esperado float64
	}{
		{"sin datos", 0, 0, 0},
		{"todo exito", 5, 0, 100},
		{"todo fallo", 0, 5, 0},
		{"mitad", 1, 1, 50},
		{"dos tercios", 2, 1, 66.67},
		{"un tercio", 1, 2, 33.33},
		{"un septimo", 1, 6, 14.29},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.esperado, TasaExito(tt.exitos, tt.fallos))
		})
	}
}

func TestEstadisticaPorcentajeExito(t *testing.T) {
	e := Estadistica{Exitos: 3, Fallos: 1}
	assert.Equal(t, 75.0, e.PorcentajeExito())

	vacia := Estadistica{}
	assert.Equal(t, 0.0, vacia.PorcentajeExito())
}
