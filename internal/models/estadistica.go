package models

import "math"

// FechaLayout is the calendar-day format used for the Estadistica.Fecha
// key. Storing the day as a plain string keeps the (pista_id, fecha)
// upsert key exact, with no timezone or sub-day precision involved.
const FechaLayout = "2006-01-02"

// Estadistica accumulates the game-event counters of one pista on one
// calendar day. The composite unique index is what the increment upsert
// conflicts against.
type Estadistica struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	PistaID      uint   `gorm:"uniqueIndex:idx_pista_fecha;not null" json:"pista_id"`
	Fecha        string `gorm:"uniqueIndex:idx_pista_fecha;size:10;not null" json:"fecha"`
	TotalVisitas int64  `gorm:"column:total_visitas;default:0" json:"total_visitas"`
	Exitos       int64  `gorm:"column:completaciones_exitosas;default:0" json:"completaciones_exitosas"`
	Fallos       int64  `gorm:"column:completaciones_fallidas;default:0" json:"completaciones_fallidas"`
}

func (Estadistica) TableName() string {
	return "estadisticas"
}

// PorcentajeExito is the success rate of this row, 0 when nothing was
// completed yet.
func (e *Estadistica) PorcentajeExito() float64 {
	return TasaExito(e.Exitos, e.Fallos)
}

// TasaExito computes exitos/(exitos+fallos) as a percentage rounded to
// two decimals. Zero completions yield 0 by convention.
func TasaExito(exitos, fallos int64) float64 {
	total := exitos + fallos
	if total == 0 {
		return 0
	}
	return math.Round(float64(exitos)*100/float64(total)*100) / 100
}
