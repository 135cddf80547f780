// Command gradebookctl runs reports and bulk operations directly against the
// table files, without the HTTP server.
package main

import (
	"os"

	"github.com/yigit/checkmygrade/internal/pkg/logger"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logger.Error().Err(err).Msg("gradebookctl failed")
		os.Exit(1)
	}
}
