package export

import (
	"strings"

	"cantine-backend/internal/features/reservation/models"
)

// Header is the fixed column order of the reservation export.
var Header = []string{"Client", "Email", "Phone", "Dish", "Date", "Time", "Status"}

// RowSerializer turns tabular data into a delimited text blob. The admin
// front-end downloads the result as a file.
type RowSerializer interface {
	Serialize(header []string, rows [][]string) string
}

// CommaSerializer joins fields with commas and rows with newlines, header
// first. Fields are written as-is; the export columns never contain commas.
type CommaSerializer struct{}

func (CommaSerializer) Serialize(header []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	for _, row := range rows {
		b.WriteByte('\n')
		b.WriteString(strings.Join(row, ","))
	}
	return b.String()
}

// Rows flattens admin reservation rows into the fixed column order.
func Rows(rows []models.AdminRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.Client, r.Email, r.Phone, r.Dish, r.Date, r.Time, string(r.Status)})
	}
	return out
}
