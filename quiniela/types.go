package quiniela

// Prediction is one match row from the current week's worksheet.
type Prediction struct {
	Jornada               string
	Fecha                 string
	Local                 string
	Visitante             string
	PronosticoLogico      string
	JustificacionLogica   string
	PronosticoSorpresa    string
	JustificacionSorpresa string
}

// Statistics is one historical week's accuracy summary.
type Statistics struct {
	Jornada    string
	Aciertos   string
	Total      string
	Porcentaje string
}

// Data is the result of a fetch. Predictions and Statistics are never nil.
// Failed is set when the fetch collapsed to the empty result because of an error.
type Data struct {
	Predictions []Prediction
	Statistics  []Statistics
	Failed      bool
}

func empty() Data {
	return Data{
		Predictions: []Prediction{},
		Statistics:  []Statistics{},
		Failed:      true,
	}
}

// HasData returns true if there is at least one prediction to display.
func (d Data) HasData() bool {
	return len(d.Predictions) > 0
}
