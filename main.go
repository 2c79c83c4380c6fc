package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sandertv/gophertunnel/minecraft/text"
	"github.com/smell-of-curry/dieface/dieface"
	"github.com/smell-of-curry/dieface/dieface/die"
	"github.com/smell-of-curry/dieface/dieface/util"
)

var (
	configPath = flag.String("config", "./config.toml", "path of the configuration file")
	edit       = flag.String("edit", "", "open the terminal editor for a die")
	analyse    = flag.String("analyse", "", "print how often each side of a die lands on top")
	query      = flag.String("query", "", "print the side of a die facing up")
	euler      = flag.String("euler", "0,0,0", "orientation used by -query, as euler angles in degrees")
)

// main ...
func main() {
	flag.Parse()

	conf, err := dieface.ReadConfig(*configPath)
	if err != nil {
		panic(err)
	}
	level, err := dieface.ParseLogLevel(conf.Dieface.LogLevel)
	if err != nil {
		slog.Warn("Falling back to info logging", "error", err)
	}
	slog.SetLogLoggerLevel(level)
	log := slog.Default()

	df, err := dieface.NewDieface(log, conf)
	if err != nil {
		panic(err)
	}
	defer df.Close()

	switch {
	case *edit != "":
		if err = df.Edit(*edit); err != nil {
			panic(err)
		}
	case *analyse != "":
		if _, err = df.Analyse(*analyse, os.Stdout); err != nil {
			panic(err)
		}
	case *query != "":
		v, err := util.ParseVec3(*euler)
		if err != nil {
			panic(err)
		}
		m, ok, err := df.Query(*query, die.Euler(v[0], v[1], v[2]))
		if err != nil {
			panic(err)
		}
		if !ok {
			fmt.Println(text.ANSI(text.Colourf("<red>No side faces up.</red>")))
			return
		}
		fmt.Println(text.ANSI(text.Colourf("<white>Side %d:</white> <green>%d</green> <grey>(%.2f°)</grey>", m.Index, m.Side.Value, m.Angle)))
	default:
		go func() {
			c := make(chan os.Signal, 1)
			signal.Notify(c, os.Interrupt, syscall.SIGTERM)
			<-c
			df.Close()
		}()
		if err = df.Start(); err != nil {
			panic(err)
		}
	}
}
