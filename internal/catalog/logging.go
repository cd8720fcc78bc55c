package catalog

import (
	"io"

	"github.com/idlab-discover/dcat-explorer-cli/internal/logging"
	"github.com/idlab-discover/dcat-explorer-cli/internal/ui"
)

var logger = &logging.Logger{PrefixText: "Fetch:", PrefixColor: ui.FgMagenta, SubjectKey: "path"}

// SetLogger sets an optional destination for fetch logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(path string, format string, args ...any) {
	logger.Logf(path, format, args...)
}
