package main

import (
	"log"

	"github.com/darjr/tablefog/internal/tabletop"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	cfg, err := tabletop.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetOutput(&lumberjack.Logger{
		Filename:   cfg.Log.File,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAgeDays,
	})

	g, err := tabletop.New(cfg, logger)
	if err != nil {
		logger.Fatal(err)
	}

	ebiten.SetWindowTitle("Tablefog")
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal(err)
	}
}
