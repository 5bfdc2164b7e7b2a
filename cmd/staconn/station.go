package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/staconn/staconn-go/pkg/config"
	"github.com/staconn/staconn-go/pkg/connection"
	"github.com/staconn/staconn-go/pkg/discovery"
	"github.com/staconn/staconn-go/pkg/log"
	"github.com/staconn/staconn-go/pkg/netif"
	"github.com/staconn/staconn-go/pkg/netif/sim"
)

// faults are injected into the simulated stack before connecting.
type faults struct {
	failures int
	reason   string
}

// station bundles a controller with its simulated stack and optional
// collaborators.
type station struct {
	adapter   *sim.Adapter
	ctrl      *connection.Controller
	announcer *discovery.Announcer
	trace     *log.FileLogger
	logger    *slog.Logger
}

func openStation(cfg *config.Config, logger *slog.Logger, f faults) (*station, error) {
	s := &station{logger: logger}

	simCfg := sim.DefaultConfig()
	simCfg.SSID = cfg.WiFi.SSID
	simCfg.Logger = logger
	s.adapter = sim.New(simCfg)

	if f.failures > 0 {
		reason, err := netif.ParseDisconnectReason(f.reason)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("fail reason: %w", err)
		}
		s.adapter.FailAssociations(f.failures, reason)
	}

	var traces []log.Logger
	if cfg.Log.TraceFile != "" {
		fl, err := log.NewFileLogger(cfg.Log.TraceFile)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("open trace: %w", err)
		}
		s.trace = fl
		traces = append(traces, fl)
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		traces = append(traces, log.NewSlogAdapter(logger))
	}

	var trace log.Logger
	if len(traces) > 0 {
		trace = log.NewMultiLogger(traces...)
	}

	connCfg, err := cfg.ToConnection(logger, trace)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.ctrl, err = connection.NewController(s.adapter, connCfg)
	if err != nil {
		s.Close()
		return nil, err
	}

	if cfg.Discovery.Enabled {
		discCfg, err := cfg.ToDiscovery(logger)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.announcer, err = discovery.NewAnnouncer(discCfg)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.announcer.Attach(s.ctrl)
	}

	return s, nil
}

// Close tears down in reverse order of construction.
func (s *station) Close() error {
	var errs []error
	if s.announcer != nil {
		errs = append(errs, s.announcer.Close())
	}
	if s.ctrl != nil {
		errs = append(errs, s.ctrl.Close())
	}
	if s.adapter != nil {
		s.adapter.Close()
	}
	if s.trace != nil {
		written, failed := s.trace.Stats()
		s.logger.Debug("trace closed", "written", written, "failed", failed)
		errs = append(errs, s.trace.Close())
	}
	return errors.Join(errs...)
}
