package profile

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"runtime/pprof"
)

// ErrProfile is returned when a profile cannot be started or written.
var ErrProfile = errors.New("profile")

// Profiler controls the lifecycle of a profiling session around one command.
//
// Call [Profiler.Start] before the command runs and [Profiler.Stop] after it
// finishes. Both are no-ops when no profile is enabled.
//
// Create instances with [Config.NewProfiler].
type Profiler struct {
	cpuFile *os.File
	logger  *slog.Logger
	Config
}

// Start sets the heap sampling rate and starts CPU profiling if enabled. The
// sampling rate is only changed when a heap or allocs profile is requested.
func (p *Profiler) Start() error {
	if (p.HeapProfile != "" || p.AllocsProfile != "") && p.MemProfileRate > 0 {
		runtime.MemProfileRate = p.MemProfileRate
	}

	if p.CPUProfile == "" {
		return nil
	}

	f, err := os.Create(p.CPUProfile) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("%w: create cpu profile: %w", ErrProfile, err)
	}

	err = pprof.StartCPUProfile(f)
	if err != nil {
		return errors.Join(
			fmt.Errorf("%w: start cpu profile: %w", ErrProfile, err),
			f.Close(),
		)
	}

	p.cpuFile = f
	p.logger.Debug("started cpu profile", slog.String("file", p.CPUProfile))

	return nil
}

// Stop ends CPU profiling and writes the heap and allocs snapshots that are
// enabled. It is safe to call Stop more than once.
func (p *Profiler) Stop() error {
	if p.cpuFile != nil {
		pprof.StopCPUProfile()

		err := p.cpuFile.Close()
		p.cpuFile = nil

		if err != nil {
			return fmt.Errorf("%w: close cpu profile: %w", ErrProfile, err)
		}

		p.logger.Info("wrote profile", slog.String("profile", "cpu"), slog.String("file", p.CPUProfile))
	}

	snapshots := []struct {
		name string
		path string
	}{
		{"heap", p.HeapProfile},
		{"allocs", p.AllocsProfile},
	}

	for _, s := range snapshots {
		if s.path == "" {
			continue
		}

		err := writeSnapshot(s.name, s.path)
		if err != nil {
			return err
		}

		p.logger.Info("wrote profile", slog.String("profile", s.name), slog.String("file", s.path))
	}

	return nil
}

func writeSnapshot(name, path string) error {
	prof := pprof.Lookup(name)
	if prof == nil {
		return fmt.Errorf("%w: unknown profile %q", ErrProfile, name)
	}

	f, err := os.Create(path) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("%w: create %s profile: %w", ErrProfile, name, err)
	}

	err = prof.WriteTo(f, 0)
	if err != nil {
		return errors.Join(
			fmt.Errorf("%w: write %s profile: %w", ErrProfile, name, err),
			f.Close(),
		)
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("%w: write %s profile: %w", ErrProfile, name, err)
	}

	return nil
}
