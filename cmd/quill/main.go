// Command quill builds the tweet sentiment project report and inspects the
// documents it writes.
package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("quill failed")
		os.Exit(1)
	}
}
