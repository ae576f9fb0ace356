// Command qtdemo fills a quadtree with random points, times the insertion,
// runs one range query and exports the tree for external plotting tools.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/robert-butts/quadtree"
	"github.com/robert-butts/quadtree/export"
	"github.com/robert-butts/quadtree/pointgen"
)

func main() {
	log := logrus.New()

	cfg, err := parseConfig(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithError(err).Fatal("invalid log level")
	}
	log.SetLevel(level)

	if err := run(cfg, log, os.Stdout); err != nil {
		log.WithError(err).Fatal("qtdemo failed")
	}
}

func run(cfg Config, log logrus.FieldLogger, stdout io.Writer) error {
	boundary := quadtree.NewBoundingBox(quadtree.Point{}, cfg.Range)
	qt, err := quadtree.New(boundary, cfg.Capacity, quadtree.WithMaxDepth(cfg.MaxDepth))
	if err != nil {
		return fmt.Errorf("failed to create quadtree: %w", err)
	}

	points, err := pointgen.Generate(pointgen.Distribution(cfg.Distribution), cfg.Seed, cfg.Points, cfg.Range)
	if err != nil {
		return err
	}

	start := time.Now()
	inserted := 0
	for _, p := range points {
		if qt.Insert(p) {
			inserted++
		}
	}
	elapsed := time.Since(start)
	log.WithFields(logrus.Fields{
		"points":  inserted,
		"dropped": len(points) - inserted,
		"elapsed": elapsed.String(),
		"height":  qt.Height(),
	}).Info("inserted points")

	query := quadtree.NewBoundingBox(quadtree.Point{X: cfg.Query.X, Y: cfg.Query.Y}, cfg.Query.HalfSize)
	start = time.Now()
	found := qt.QueryRange(query)
	log.WithFields(logrus.Fields{
		"query":   query.Center.String(),
		"half":    query.HalfSize,
		"found":   len(found),
		"elapsed": time.Since(start).String(),
	}).Info("queried points")
	for _, p := range found {
		log.WithField("point", p.String()).Debug("found point")
	}

	if cfg.Out == "" {
		return nil
	}
	return writeExport(cfg, qt, log, stdout)
}

func writeExport(cfg Config, qt *quadtree.Quadtree, log logrus.FieldLogger, stdout io.Writer) error {
	format, err := export.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	rec := export.FromTree(qt)

	if cfg.Out == "-" {
		return export.Encode(stdout, rec, format)
	}

	f, err := os.Create(cfg.Out)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := export.Encode(f, rec, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close export file: %w", err)
	}
	log.WithFields(logrus.Fields{
		"file":   cfg.Out,
		"format": format,
		"nodes":  rec.Nodes(),
		"points": rec.Count(),
	}).Info("exported quadtree")
	return nil
}
