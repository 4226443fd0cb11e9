package records

// Category labels that always route to the tutela track regardless of the
// reported class.
var tutelaCategories = map[string]bool{
	"Incidentes de Desacato": true,
	"Movimiento de Tutelas":  true,
}

// Category labels for cases still processed under the written procedure.
// These only route to the written track when the office shows written
// throughput in the window; otherwise they stay on their reported class.
var writtenCategories = map[string]bool{
	"Procesos Ley 600 de 2000":           true,
	"Ejecución de Sentencias Ley 600":    true,
	"Procesos Escriturales Transitorios": true,
}

// Tutela reports whether a category label belongs to the tutela track.
func Tutela(category string) bool {
	return tutelaCategories[category]
}

// Written reports whether a category label belongs to the written procedure.
func Written(category string) bool {
	return writtenCategories[category]
}

// Reclassify routes statistics rows to their scoring track. Tutela categories
// always move to the tutela track. Written procedure categories move to the
// written track only when the rows carry effective load, so offices with a
// dormant written docket keep those rows on the oral track. The input slice
// is not modified.
func Reclassify(recs []Record) []Record {
	hasWrittenLoad := false
	for _, r := range recs {
		if Written(r.Category) && r.EffectiveLoad > 0 {
			hasWrittenLoad = true
			break
		}
	}

	out := make([]Record, len(recs))
	for i, r := range recs {
		switch {
		case Tutela(r.Category):
			r.Class = ClassTutelas
		case Written(r.Category) && hasWrittenLoad:
			r.Class = ClassEscrito
		}
		out[i] = r
	}
	return out
}

// Split partitions rows by class after reclassification.
func Split(recs []Record) map[Class][]Record {
	out := make(map[Class][]Record)
	for _, r := range recs {
		out[r.Class] = append(out[r.Class], r)
	}
	return out
}
