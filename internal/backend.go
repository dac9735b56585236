package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/pid2go/internal/api"
	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/loops"
	"github.com/markusressel/pid2go/internal/persistence"
	"github.com/markusressel/pid2go/internal/statistics"
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
)

const shutdownTimeout = 5 * time.Second

func RunDaemon() {
	config := configuration.CurrentConfig

	pers := persistence.NewPersistence(config.DbPath)
	if err := pers.Init(); err != nil {
		ui.Fatal("Unable to initialize persistence at %s: %v", config.DbPath, err)
	}

	loopList, err := InitializeObjects(config)
	if err != nil {
		ui.Fatal("%v", err)
	}
	if len(loopList) == 0 {
		ui.Fatal("No valid loop configurations, exiting.")
	}

	statistics.Register(statistics.NewLoopCollector(loopList...))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var g run.Group
	if config.Statistics.Enabled {
		// === Prometheus Exporter
		port := config.Statistics.Port
		if port <= 0 || port >= 65535 {
			port = 9000
		}
		addr := fmt.Sprintf(":%d", port)
		addEchoServer(&g, "statistics", api.CreateStatisticsService(), addr)
	}
	if config.Api.Enabled {
		// === REST Api
		addr := fmt.Sprintf("%s:%d", config.Api.Host, config.Api.Port)
		addEchoServer(&g, "api", api.CreateRestService(prometheus.DefaultRegisterer), addr)
	}
	if config.Profiling.Enabled {
		// === pprof
		addr := fmt.Sprintf("%s:%d", config.Profiling.Host, config.Profiling.Port)
		server := createProfilingServer(addr)
		g.Add(func() error {
			ui.Info("Starting profiling webserver on %s", addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}, func(err error) {
			timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer timeoutCancel()
			if err := server.Shutdown(timeoutCtx); err != nil {
				ui.Warning("Error stopping profiling webserver: %v", err)
			}
		})
	}
	{
		// === control loops
		for _, loop := range loopList {
			l := loop
			tickRate := l.GetConfig().EffectiveTickRate(config.ControllerTickRate)
			runner := loops.NewRunner(pers, l, tickRate, config.StatePersistRate)

			g.Add(func() error {
				err := runner.Run(ctx)
				if err != nil {
					// a failing loop must not take down the other loops
					ui.ErrorAndNotify("Control Loop Stopped", "Control loop %s stopped: %v", l.GetId(), err)
					<-ctx.Done()
					return nil
				}
				ui.Info("Control loop %s stopped.", l.GetId())
				return nil
			}, func(err error) {
				cancel()
			})
		}
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case <-sig:
				ui.Info("Received SIGTERM signal, exiting...")
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	if err := g.Run(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	} else {
		ui.Info("Done.")
		os.Exit(0)
	}
}

// InitializeObjects creates a loop for every configured loop definition and adds it to loops.LoopMap.
func InitializeObjects(config configuration.Configuration) ([]*loops.Loop, error) {
	var loopList []*loops.Loop
	for _, loopConfig := range config.Loops {
		loop, err := loops.NewLoop(loopConfig, config.HistorySize)
		if err != nil {
			return nil, fmt.Errorf("unable to process loop configuration %s: %w", loopConfig.ID, err)
		}
		loops.LoopMap.Set(loopConfig.ID, loop)
		loopList = append(loopList, loop)
	}
	return loopList, nil
}

func addEchoServer(g *run.Group, name string, server *echo.Echo, addr string) {
	g.Add(func() error {
		ui.Info("Starting %s webserver on %s", name, addr)
		if err := server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("cannot start %s webserver: %w", name, err)
		}
		return nil
	}, func(err error) {
		ui.Info("Stopping %s webserver...", name)
		timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer timeoutCancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			ui.Warning("Error stopping %s webserver: %v", name, err)
		}
	})
}

func createProfilingServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
