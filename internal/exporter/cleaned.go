package exporter

import (
	"energyreport/pkg/contracts/domain"
)

// CleanedColumns names the columns of the cleaned data artifact
type CleanedColumns struct {
	Timestamp string
	Value     string
	Group     string
}

// extraPrefix is prepended to an extra input column whose name is already
// taken in the cleaned header
const extraPrefix = "input_"

// CleanedTable converts the cleaned records to CSV rows, one per record in
// table order. Extra input columns follow the three fixed ones; a record
// without a value for an extra column gets an empty field. An extra column
// named like a fixed one is written as input_<name>.
func CleanedTable(table domain.CleanTable, cols CleanedColumns) WriteOptions {
	headers := []string{cols.Timestamp, cols.Value, cols.Group}
	taken := map[string]bool{cols.Timestamp: true, cols.Value: true, cols.Group: true}
	for _, col := range table.Columns {
		name := col
		for taken[name] {
			name = extraPrefix + name
		}
		taken[name] = true
		headers = append(headers, name)
	}

	records := make([][]string, 0, table.Len())
	for _, r := range table.Records {
		row := make([]string, 0, len(headers))
		row = append(row,
			r.Timestamp.Format(recordTimeLayout),
			formatValue(r.Value),
			r.Group,
		)
		for _, col := range table.Columns {
			row = append(row, r.Fields[col])
		}
		records = append(records, row)
	}

	return WriteOptions{Headers: headers, Records: records}
}
