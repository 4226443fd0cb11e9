package grades

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

var exportHeader = []string{
	"office_id", "category", "from", "to", "labor_days",
	"initial_inventory", "income", "effective_load",
	"outflow", "settlements", "final_inventory", "remaining",
}

func (r *repo) ExportCSV(ctx context.Context, id uuid.UUID) ([]byte, error) {
	g, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return renderExport(g)
}

// renderExport writes the grade's consolidated rows as CSV, one block of
// rows per office.
func renderExport(g *PeriodGrade) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("write export header: %w", err)
	}

	for _, o := range g.Offices {
		for _, c := range o.Consolidated {
			row := []string{
				o.OfficeID.String(),
				c.Category,
				c.From.Format(time.DateOnly),
				c.To.Format(time.DateOnly),
				strconv.Itoa(c.LaborDays),
				strconv.Itoa(c.InitialInventory),
				strconv.Itoa(c.Income),
				strconv.Itoa(c.EffectiveLoad),
				strconv.Itoa(c.Outflow),
				strconv.Itoa(c.Settlements),
				strconv.Itoa(c.FinalInventory),
				strconv.Itoa(c.Remaining),
			}
			if err := w.Write(row); err != nil {
				return nil, fmt.Errorf("write export row: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush export: %w", err)
	}

	return buf.Bytes(), nil
}

func (r *repo) uploadExport(ctx context.Context, g *PeriodGrade, key string) error {
	data, err := renderExport(g)
	if err != nil {
		return err
	}
	return r.storage.Upload(ctx, key, bytes.NewReader(data), "text/csv")
}
