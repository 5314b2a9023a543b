package main

import (
	"github.com/propchain/bridge/cmd"
	"github.com/propchain/bridge/config"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load environment variables into viper
	if err := config.LoadEnv(); err != nil {
		panic("Failed to load environment variables: " + err.Error())
	}

	if err := cmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("bridged exited with error")
	}
}
