package main

import (
	"flag"
	"log"
	"os"
	"runtime/debug"

	"github.com/sqweek/dialog"
)

var (
	debugLog bool
	devMode  bool
	pgnPath  string
	baseDir  string
)

func main() {
	flag.BoolVar(&debugLog, "debug", false, "verbose/debug logging")
	flag.BoolVar(&devMode, "devmode", false, "enable the pulled-back dev camera toggle")
	flag.StringVar(&pgnPath, "pgn", "", "play back a PGN game instead of random moves")
	flag.Parse()

	baseDir = os.Getenv("PWD")
	if baseDir == "" {
		var err error
		if baseDir, err = os.Getwd(); err != nil {
			log.Fatalf("get working directory: %v", err)
		}
	}

	loadSettings()
	if pgnPath == "" {
		pgnPath = gs.LastPGN
	} else {
		gs.LastPGN = pgnPath
	}
	setupLogging(debugLog)
	defer func() {
		if r := recover(); r != nil {
			logError("panic: %v\n%s", r, debug.Stack())
			dialog.Message("%v", r).Title("chessview crashed").Error()
		}
	}()

	initSoundContext()
	preRenderPieceSprites()

	g := newGame()
	applySettings(g)

	if err := runGame(g); err != nil {
		logError("run: %v", err)
		dialog.Message("%v", err).Title("chessview error").Error()
		os.Exit(1)
	}
}
