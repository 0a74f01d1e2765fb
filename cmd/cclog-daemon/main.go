// cclog-daemon is the optional collector. When CC_LOGGER_SOCKET is set, cclog
// wrappers forward their entries here instead of locking the database file in
// every compile step; the daemon becomes the sole writer of the file while it
// runs and quits by itself once the build stops sending connections.
package main

import (
	"fmt"
	"os"
	"time"

	sdaemon "github.com/coreos/go-systemd/v22/daemon"

	"cclog/internal/collect"
	"cclog/internal/common"
)

func failedStartDaemon(err any) {
	_, _ = fmt.Fprintln(os.Stderr, "daemon not started:", err)
	os.Exit(1)
}

func main() {
	showVersionAndExit := common.CmdEnvBool("Show version and exit.", false,
		"version", "")
	showVersionAndExitShort := common.CmdEnvBool("Show version and exit.", false,
		"v", "")
	configFile := common.CmdEnvString("Path to the daemon config file.", "/etc/cclog/daemon.toml",
		"config", "CC_LOGGER_CONFIG")
	socketPath := common.CmdEnvString("Unix socket to listen on for cclog wrappers.", "",
		"socket", "CC_LOGGER_SOCKET")
	outputFile := common.CmdEnvString("Compilation database to write.", "",
		"output", "CC_LOGGER_FILE")
	idleSeconds := common.CmdEnvInt("Quit after this many seconds without wrapper connections.", 0,
		"idle-timeout", "")

	common.ParseCmdFlagsCombiningWithEnv()

	if *showVersionAndExit || *showVersionAndExitShort {
		fmt.Println(common.GetVersion())
		os.Exit(0)
	}

	configuration, err := ParseConfiguration(*configFile)
	if err != nil {
		failedStartDaemon("failed to parse configuration: " + err.Error())
	}
	if *socketPath != "" {
		configuration.SocketPath = *socketPath
	}
	if *outputFile != "" {
		configuration.OutputFile = *outputFile
	}
	if *idleSeconds > 0 {
		configuration.IdleTimeoutSeconds = *idleSeconds
	}

	if err := collect.MakeLoggerCollect(configuration.LogFileName, configuration.LogLevel); err != nil {
		failedStartDaemon(err)
	}

	collector := collect.MakeCollector(configuration.OutputFile)
	listener := collect.MakeSockListener()
	if err := listener.StartListeningUnixSocket(configuration.SocketPath); err != nil {
		failedStartDaemon(err)
	}

	_, _ = sdaemon.SdNotify(false, sdaemon.SdNotifyReady)
	go listener.StartAcceptingConnections(collector)
	listener.EnterInfiniteLoopUntilQuit(collector,
		time.Duration(configuration.IdleTimeoutSeconds)*time.Second,
		time.Duration(configuration.FlushIntervalSeconds)*time.Second)

	_, _ = sdaemon.SdNotify(false, sdaemon.SdNotifyStopping)
	if err := collector.Flush(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "final flush failed:", err)
		os.Exit(1)
	}
}
