package explorer

import (
	"io"

	"github.com/idlab-discover/dcat-explorer-cli/internal/logging"
	"github.com/idlab-discover/dcat-explorer-cli/internal/ui"
)

var logger = &logging.Logger{PrefixText: "Explore:", PrefixColor: ui.FgGreen, SubjectKey: "request"}

// SetLogger sets an optional destination for search logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(request string, format string, args ...any) {
	logger.Logf(request, format, args...)
}
