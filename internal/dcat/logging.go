package dcat

import (
	"io"

	"github.com/idlab-discover/dcat-explorer-cli/internal/logging"
	"github.com/idlab-discover/dcat-explorer-cli/internal/ui"
)

var logger = &logging.Logger{PrefixText: "Normalize:", PrefixColor: ui.FgCyan}

// SetLogger sets an optional destination for normalization logs. Field shape
// anomalies are only ever reported here.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(datasetID string, format string, args ...any) {
	logger.Logf(datasetID, format, args...)
}
