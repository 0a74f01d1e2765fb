package main

import (
	"os"

	"github.com/BurntSushi/toml"
)

type Configuration struct {
	SocketPath           string
	OutputFile           string
	LogFileName          string
	LogLevel             int
	IdleTimeoutSeconds   int
	FlushIntervalSeconds int
}

// ParseConfiguration reads the daemon config file; a missing file just yields
// the defaults, so the daemon can run with no setup at all.
func ParseConfiguration(filePath string) (*Configuration, error) {
	config := Configuration{
		SocketPath:           "/tmp/cclog-daemon.sock",
		OutputFile:           "compile_commands.json",
		LogFileName:          "stderr",
		LogLevel:             1,
		IdleTimeoutSeconds:   60,
		FlushIntervalSeconds: 5,
	}
	if _, err := toml.DecodeFile(filePath, &config); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return &config, nil
}
