package formatter

import (
	"fmt"
	"time"

	"github.com/alexanderramin/bizbook/internal/domain"
)

// FormatSnapshots renders snapshots in the order given, with ages relative
// to now.
func FormatSnapshots(snaps []domain.Snapshot, now time.Time) string {
	if len(snaps) == 0 {
		return Dim("No snapshots.") + "\n"
	}
	rows := make([][]string, 0, len(snaps))
	for _, s := range snaps {
		rows = append(rows, []string{
			Dim(ShortID(s.ID)),
			Bold(s.Name),
			s.Timestamp.Local().Format("2006-01-02 15:04"),
			Dim(RelativeTimeFrom(s.Timestamp, now)),
			fmt.Sprintf("%d/%d/%d", len(s.Data.Transactions), len(s.Data.Clients), len(s.Data.Opportunities)),
		})
	}
	return RenderTable([]string{"ID", "NAME", "TAKEN", "AGE", "TX/CLI/OPP"}, rows)
}
