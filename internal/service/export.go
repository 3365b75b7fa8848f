package service

import (
	"context"
	"strings"
)

// csvHeader is the export contract: these columns, in this order.
var csvHeader = []string{"Name", "Email", "Phone", "Type", "Notes", "Registered At"}

// Export is a rendered CSV file plus the filename the contract prescribes.
type Export struct {
	Filename string
	Content  string
}

// ExportCSV renders every registration for the event as CSV, one row per
// registration in fetch order. Every field is wrapped in double quotes with
// internal quotes doubled, and the file is named
// "<event title>-registrations.csv". Other tools consume these exports, so
// both conventions are load-bearing.
func (s *RegistrationService) ExportCSV(ctx context.Context, eventID string) (*Export, error) {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	regs, err := s.store.ListRegistrationsByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(regs)+1)
	rows = append(rows, csvHeader)
	for _, r := range regs {
		rows = append(rows, []string{
			r.Name,
			r.Email,
			r.Phone,
			r.RegistrationType.Label(),
			r.Notes,
			r.CreatedAt.Format("2006-01-02"),
		})
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, field := range row {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(field, `"`, `""`))
			b.WriteByte('"')
		}
	}

	return &Export{
		Filename: event.Title + "-registrations.csv",
		Content:  b.String(),
	}, nil
}
