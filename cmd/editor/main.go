package main

import (
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/heighthop/logger"
	"go.uber.org/zap"
)

const (
	baseWidthEditor  = 1280
	baseHeightEditor = 800
)

func main() {
	levelPath := flag.String("level", "", "level file to edit; created on save when missing")
	outPath := flag.String("out", "", "save path (defaults to the -level path)")
	width := flag.Float64("w", 1600, "width of a new level")
	height := flag.Float64("h", 1200, "height of a new level")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	if err := logger.InitWithFileConfig(*logLevel, logger.FileConfig{}, os.Stderr); err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	doc, err := openOrCreate(*levelPath, *width, *height)
	if err != nil {
		logger.Fatal("open level", zap.String("path", *levelPath), zap.Error(err))
	}

	ebiten.SetWindowSize(baseWidthEditor, baseHeightEditor)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("heighthop editor")

	if err := ebiten.RunGame(NewEditor(doc, *outPath, baseWidthEditor, baseHeightEditor)); err != nil {
		logger.Error("editor exited", zap.Error(err))
	}
}

func openOrCreate(path string, w, h float64) (*Doc, error) {
	if path == "" {
		return NewDoc("untitled", w, h), nil
	}
	doc, err := OpenDoc(path)
	if errors.Is(err, fs.ErrNotExist) {
		name := filepath.Base(path)
		doc = NewDoc(name[:len(name)-len(filepath.Ext(name))], w, h)
		doc.Path = path
		return doc, nil
	}
	return doc, err
}
