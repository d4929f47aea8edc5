package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/opencost/filterkit/pkg/cmd"
)

func main() {
	// runs eval unless another sub-command is named
	// see: github.com/opencost/filterkit/pkg/cmd package for details
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("filterkit failed")
		os.Exit(1)
	}
}
