package exporter

import (
	"strings"

	"energyreport/pkg/contracts/domain"
)

const processLogHeader = "--- Data Processing Log ---"

// RenderProcessingLog renders the header and every entry in encounter order
func RenderProcessingLog(log *domain.ProcessingLog) []byte {
	var b strings.Builder
	b.WriteString(processLogHeader)
	b.WriteByte('\n')
	if log != nil {
		for _, line := range log.Lines() {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return []byte(b.String())
}
