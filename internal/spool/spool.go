// Package spool batch-converts saved pages from an inbox directory into
// JSON documents in an outbox directory.
package spool

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/slinet/ehparse/internal/config"
	"github.com/slinet/ehparse/internal/logger"
	"github.com/slinet/ehparse/pkg/parser"
)

// Result summarizes one run.
type Result struct {
	Converted int `json:"converted"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}

// failure is written in place of the output when a page cannot be decoded.
type failure struct {
	Kind  Kind   `json:"kind"`
	Error string `json:"error"`
}

// Spool converts inbox files.
type Spool struct {
	cfg    config.SpoolConfig
	parser *parser.Parser
	logger *zap.Logger
}

func New(cfg config.SpoolConfig, p *parser.Parser, logger *zap.Logger) *Spool {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Spool{cfg: cfg, parser: p, logger: logger}
}

// Run converts every pending inbox file. A file is pending when neither
// <name>.json nor <name>.error.json exists in the outbox. Decode failures
// are recorded as error files and counted; I/O failures and cancellation
// abort the run.
func (s *Spool) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	if err := os.MkdirAll(s.cfg.Outbox, 0o755); err != nil {
		return Result{}, fmt.Errorf("create outbox: %w", err)
	}
	entries, err := os.ReadDir(s.cfg.Inbox)
	if err != nil {
		return Result{}, fmt.Errorf("read inbox: %w", err)
	}

	var converted, failed, skipped atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)

	for _, entry := range entries {
		if entry.IsDir() || !isPage(entry.Name()) {
			continue
		}
		name := entry.Name()
		kind, ok := KindOf(name)
		if !ok {
			s.logger.Debug("skipping file with unknown kind", zap.String("file", name))
			skipped.Add(1)
			continue
		}
		if s.done(name) {
			skipped.Add(1)
			continue
		}
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			ok, err := s.convert(gctx, name, kind)
			if err != nil {
				return err
			}
			if ok {
				converted.Add(1)
			} else {
				failed.Add(1)
			}
			return nil
		})
	}

	err = g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	res := Result{
		Converted: int(converted.Load()),
		Failed:    int(failed.Load()),
		Skipped:   int(skipped.Load()),
	}
	s.logger.Info("spool run finished",
		zap.Int("converted", res.Converted),
		zap.Int("failed", res.Failed),
		zap.Int("skipped", res.Skipped),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(err))
	return res, err
}

// convert decodes one file. It reports false when the page was rejected.
func (s *Spool) convert(ctx context.Context, name string, kind Kind) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	data, err := os.ReadFile(filepath.Join(s.cfg.Inbox, name))
	if err != nil {
		return false, fmt.Errorf("read %s: %w", name, err)
	}

	start := time.Now()
	v, derr := Decode(s.parser, kind, string(data))
	fields := append(logger.Document(string(kind), len(data), time.Since(start)), zap.String("file", name))
	if derr != nil {
		s.logger.Warn("page rejected", append(fields, zap.Error(derr))...)
		return false, s.write(name+".error.json", failure{Kind: kind, Error: derr.Error()})
	}
	s.logger.Debug("page converted", fields...)
	return true, s.write(name+".json", v)
}

// write stores v atomically through a temp file and rename.
func (s *Spool) write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	tmp, err := os.CreateTemp(s.cfg.Outbox, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.cfg.Outbox, name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename %s: %w", name, err)
	}
	return nil
}

func (s *Spool) done(name string) bool {
	for _, out := range []string{name + ".json", name + ".error.json"} {
		if _, err := os.Stat(filepath.Join(s.cfg.Outbox, out)); err == nil {
			return true
		}
	}
	return false
}

func isPage(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		return true
	}
	return false
}
