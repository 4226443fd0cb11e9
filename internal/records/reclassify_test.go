package records

import (
	"testing"
)

func rec(class Class, category string, load int) Record {
	return Record{Class: class, Category: category, EffectiveLoad: load}
}

func TestReclassifyTutelaCategories(t *testing.T) {
	in := []Record{
		rec(ClassOral, "Incidentes de Desacato", 3),
		rec(ClassOral, "Movimiento de Tutelas", 5),
		rec(ClassOral, "Procesos Ordinarios", 10),
	}

	out := Reclassify(in)

	if out[0].Class != ClassTutelas {
		t.Errorf("expected desacato row on tutela track, got %s", out[0].Class)
	}
	if out[1].Class != ClassTutelas {
		t.Errorf("expected tutela row on tutela track, got %s", out[1].Class)
	}
	if out[2].Class != ClassOral {
		t.Errorf("expected ordinary row untouched, got %s", out[2].Class)
	}
}

func TestReclassifyWrittenRequiresLoad(t *testing.T) {
	tests := []struct {
		name string
		recs []Record
		want Class
	}{
		{
			name: "written category with load moves to written track",
			recs: []Record{
				rec(ClassOral, "Procesos Ley 600 de 2000", 4),
			},
			want: ClassEscrito,
		},
		{
			name: "written category without load stays on reported track",
			recs: []Record{
				rec(ClassOral, "Procesos Ley 600 de 2000", 0),
			},
			want: ClassOral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Reclassify(tt.recs)
			if out[0].Class != tt.want {
				t.Errorf("expected class %s, got %s", tt.want, out[0].Class)
			}
		})
	}
}

func TestReclassifyWrittenLoadAppliesOfficeWide(t *testing.T) {
	in := []Record{
		rec(ClassOral, "Procesos Ley 600 de 2000", 0),
		rec(ClassOral, "Ejecución de Sentencias Ley 600", 2),
	}

	out := Reclassify(in)

	// One written row with load pulls every written row onto the track.
	for i, r := range out {
		if r.Class != ClassEscrito {
			t.Errorf("row %d: expected written track, got %s", i, r.Class)
		}
	}
}

func TestReclassifyDoesNotModifyInput(t *testing.T) {
	in := []Record{rec(ClassOral, "Movimiento de Tutelas", 1)}

	Reclassify(in)

	if in[0].Class != ClassOral {
		t.Errorf("input slice was modified, got %s", in[0].Class)
	}
}

func TestSplit(t *testing.T) {
	in := []Record{
		rec(ClassOral, "A", 1),
		rec(ClassOral, "B", 1),
		rec(ClassTutelas, "Movimiento de Tutelas", 1),
		rec(ClassEscrito, "C", 1),
	}

	out := Split(in)

	if len(out[ClassOral]) != 2 {
		t.Errorf("expected 2 oral rows, got %d", len(out[ClassOral]))
	}
	if len(out[ClassTutelas]) != 1 {
		t.Errorf("expected 1 tutela row, got %d", len(out[ClassTutelas]))
	}
	if len(out[ClassEscrito]) != 1 {
		t.Errorf("expected 1 written row, got %d", len(out[ClassEscrito]))
	}
	if len(out[ClassGarantias]) != 0 {
		t.Errorf("expected no guarantees rows, got %d", len(out[ClassGarantias]))
	}
}
