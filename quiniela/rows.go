package quiniela

import (
	"fmt"
)

// MakePredictions maps the rows of the predictions range positionally, i.e. the columns are expected
// to be in 'Jornada, Fecha, Local, Visitante, Pronostico_Logico, Justificacion_Logica,
// Pronostico_Sorpresa, Justificacion_Sorpresa' order. Short rows are padded with empty strings and
// extra columns are ignored.
func MakePredictions(rows [][]any) []Prediction {
	predictions := make([]Prediction, 0, len(rows))

	for _, row := range rows {
		predictions = append(predictions, Prediction{
			Jornada:               cell(row, 0),
			Fecha:                 cell(row, 1),
			Local:                 cell(row, 2),
			Visitante:             cell(row, 3),
			PronosticoLogico:      cell(row, 4),
			JustificacionLogica:   cell(row, 5),
			PronosticoSorpresa:    cell(row, 6),
			JustificacionSorpresa: cell(row, 7),
		})
	}

	return predictions
}

// MakeStatistics maps the rows of the history range positionally ('Jornada, Aciertos, Total, Porcentaje').
func MakeStatistics(rows [][]any) []Statistics {
	statistics := make([]Statistics, 0, len(rows))

	for _, row := range rows {
		statistics = append(statistics, Statistics{
			Jornada:    cell(row, 0),
			Aciertos:   cell(row, 1),
			Total:      cell(row, 2),
			Porcentaje: cell(row, 3),
		})
	}

	return statistics
}

func cell(row []any, ix int) string {
	if ix >= len(row) || row[ix] == nil {
		return ""
	}

	if v, ok := row[ix].(string); ok {
		return v
	}

	return fmt.Sprintf("%v", row[ix])
}
