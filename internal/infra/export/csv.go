package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/lesptitsgilets/contacts-sync/internal/entity"
)

// Column headers are a compatibility surface: the Brevo import wizard maps
// on them. Do not rename.
var (
	membersHeader    = []string{"CONTACT ID", "EMAIL", "FIRSTNAME", "LASTNAME", "DATE_ADHESION", "ADHESION_OK"}
	volunteersHeader = []string{"CONTACT ID", "EMAIL", "FIRSTNAME", "LASTNAME", "SMS"}
)

type CSVExporter struct{}

func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

func (e *CSVExporter) MembersCSV(rows []entity.Row) ([]byte, error) {
	return render(membersHeader, rows, func(r entity.Row) []string {
		return []string{r.ContactID, r.Email, r.FirstName, r.LastName, r.MembershipDate, strconv.FormatBool(r.Current)}
	})
}

func (e *CSVExporter) VolunteersCSV(rows []entity.Row) ([]byte, error) {
	return render(volunteersHeader, rows, func(r entity.Row) []string {
		return []string{r.ContactID, r.Email, r.FirstName, r.LastName, r.Phone}
	})
}

func render(header []string, rows []entity.Row, line func(entity.Row) []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(line(row)); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
