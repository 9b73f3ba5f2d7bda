/*
This is an example of application that will use the
engine package to test things out
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/anima/engine"
	"github.com/spaghettifunk/anima/engine/core"
	"github.com/spaghettifunk/anima/testbed"
)

func main() {
	configPath := flag.String("config", "assets/config.toml", "application configuration (.toml or .yaml)")
	backend := flag.String("backend", "", "override the platform backend: glfw, ebiten or headless")
	frames := flag.Int("frames", -1, "override the number of frames rendered by the headless backend")
	flag.Parse()

	config, err := engine.LoadApplicationConfig(*configPath)
	if err != nil {
		core.LogWarn("%s, using the default configuration", err)
		config = engine.DefaultApplicationConfig()
	}
	if *backend != "" {
		config.Backend = *backend
	}
	if *frames >= 0 {
		config.Headless.Frames = *frames
	}
	config.Headless.Progress = os.Stderr

	tb, err := testbed.NewTestGame(config)
	if err != nil {
		core.LogFatal(err.Error())
	}

	engine, err := engine.New(tb.Game)
	if err != nil {
		core.LogFatal(err.Error())
	}

	if err := engine.Initialize(); err != nil {
		_ = engine.Shutdown()
		core.LogFatal(err.Error())
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// stop the frame loop; shutdown happens on the main thread
	go func() {
		<-sigCh
		engine.RequestQuit()
	}()

	// run engine
	runErr := engine.Run()
	if err := engine.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
	if runErr != nil {
		core.LogFatal(runErr.Error())
	}
}
