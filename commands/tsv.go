package commands

import (
	"encoding/csv"
	"io"

	"github.com/quiniela-ai/quiniela-web/quiniela"
)

func predictionsToTSV(f io.Writer, predictions []quiniela.Prediction) error {
	header := []string{
		"Jornada",
		"Fecha",
		"Local",
		"Visitante",
		"Pronostico_Logico",
		"Justificacion_Logica",
		"Pronostico_Sorpresa",
		"Justificacion_Sorpresa",
	}

	records := [][]string{}
	for _, p := range predictions {
		records = append(records, []string{
			p.Jornada,
			p.Fecha,
			p.Local,
			p.Visitante,
			p.PronosticoLogico,
			p.JustificacionLogica,
			p.PronosticoSorpresa,
			p.JustificacionSorpresa,
		})
	}

	return writeTSV(f, header, records)
}

func statisticsToTSV(f io.Writer, statistics []quiniela.Statistics) error {
	header := []string{"Jornada", "Aciertos", "Total", "Porcentaje"}

	records := [][]string{}
	for _, s := range statistics {
		records = append(records, []string{s.Jornada, s.Aciertos, s.Total, s.Porcentaje})
	}

	return writeTSV(f, header, records)
}

func writeTSV(f io.Writer, header []string, records [][]string) error {
	w := csv.NewWriter(f)
	w.Comma = '\t'

	w.Write(header)
	for _, record := range records {
		w.Write(record)
	}

	w.Flush()

	return w.Error()
}
