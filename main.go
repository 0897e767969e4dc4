package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/jessevdk/go-flags"
	log "github.com/sirupsen/logrus"

	"github.com/procfault/zombiemaker/config"
	"github.com/procfault/zombiemaker/fork"
	"github.com/procfault/zombiemaker/generator"
)

type Options struct {
	Configuration string `short:"c" long:"configuration" description:"the configuration file" default:"zombiemaker.conf"`
	Daemon        bool   `short:"d" long:"daemon" description:"run as daemon"`
	EnvFile       string `long:"env-file" description:"the environment file"`
	Pidfile       string `long:"pidfile" description:"the pid file to write in daemon mode"`
}

func init() {
	log.SetOutput(os.Stdout)
	if runtime.GOOS == "windows" {
		log.SetFormatter(&log.TextFormatter{DisableColors: true, FullTimestamp: true})
	} else {
		log.SetFormatter(&log.TextFormatter{DisableColors: false, FullTimestamp: true})
	}
	if lvl, err := log.ParseLevel(os.Getenv("ZOMBIEMAKER_LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	} else {
		log.SetLevel(log.DebugLevel)
	}
}

func initSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.WithFields(log.Fields{"signal": sig}).Info("receive a signal to stop generating & exit")
		cancel()
	}()

}

var options Options
var parser = flags.NewParser(&options, flags.Default & ^flags.PrintErrors)

// RunGenerator starts the zombie generator loop and blocks until a stop
// signal arrives or a fork fails.
func RunGenerator() {
	if options.EnvFile != "" {
		if err := config.LoadEnvFile(options.EnvFile); err != nil {
			log.WithFields(log.Fields{"err": err, "file": options.EnvFile}).Error("fail to load env file")
		}
	}

	cfg := config.NewConfig(options.Configuration)
	if err := cfg.Load(); err != nil {
		log.WithFields(log.Fields{"err": err, "file": options.Configuration}).Error("fail to load configuration")
	}

	interval := generator.DefaultInterval
	lifetime := generator.DefaultChildLifetime
	listenAddr := ""
	listenSock := ""
	if entry, ok := cfg.GetZombiemaker(); ok {
		interval = entry.GetDuration("interval", interval)
		lifetime = entry.GetDuration("child_lifetime", lifetime)
		listenAddr = entry.GetString("listen_addr", "")
		listenSock = entry.GetString("listen_sock", "")
		if entry.HasParameter("log_level") {
			setLogLevel(entry.GetString("log_level", "debug"))
		}
	}

	g := generator.New(interval, lifetime)
	ctx, cancel := context.WithCancel(context.Background())
	initSignals(cancel)

	diag := NewDiagServer(g)
	if listenAddr != "" {
		go diag.StartInetHTTPServer(listenAddr)
	} else if listenSock != "" {
		go diag.StartUnixHTTPServer(listenSock)
	}

	if err := g.Run(ctx); err != nil {
		log.WithFields(log.Fields{"err": err}).Fatal("fail to create zombie process")
	}
	diag.Stop()
}

// setLogLevel applies the level to this process and exports it so forked
// copies come up with the same level.
func setLogLevel(level string) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.WithFields(log.Fields{"level": level}).Warn("unknown log level")
		return
	}
	log.SetLevel(lvl)
	os.Setenv("ZOMBIEMAKER_LOG_LEVEL", lvl.String())
}

// runForked is the entry point of the forked copies of the executable. The
// maker and the zombie flow through the same cycle; the fork branch decides
// which side this copy plays.
func runForked() {
	if err := generator.RunMaker(generator.ChildLifetimeFromEnv()); err != nil {
		log.WithFields(log.Fields{"err": err}).Fatal("fail to create zombie process")
	}
}

func main() {
	switch fork.CurrentRole() {
	case generator.RoleMaker, generator.RoleZombie:
		runForked()
		return
	}

	if _, err := parser.Parse(); err != nil {
		flagsErr, ok := err.(*flags.Error)
		if ok {
			switch flagsErr.Type {
			case flags.ErrHelp:
				fmt.Fprintln(os.Stdout, err)
				os.Exit(0)
			case flags.ErrCommandRequired:
				if options.Daemon {
					Daemonize(RunGenerator)
				} else {
					RunGenerator()
				}
			default:
				panic(err)
			}
		}
	}
}
