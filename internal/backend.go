package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/radioburst/catpower/internal/api"
	"github.com/radioburst/catpower/internal/cat"
	"github.com/radioburst/catpower/internal/configuration"
	"github.com/radioburst/catpower/internal/controller"
	"github.com/radioburst/catpower/internal/memory"
	"github.com/radioburst/catpower/internal/statistics"
	"github.com/radioburst/catpower/internal/telemetry"
	"github.com/radioburst/catpower/internal/ui"
)

func RunDaemon() {
	config := configuration.CurrentConfig

	ui.Info("Connecting to CAT server at %s:%d", config.Device.Address, config.Device.Port)
	channel, err := cat.Connect(
		config.Device.Address,
		config.Device.Port,
		config.Device.ConnectTimeout,
		config.Device.ReadTimeout,
	)
	if err != nil {
		ui.Fatal("Cannot connect to CAT server: %v", err)
	}
	defer func() {
		_ = channel.Close()
	}()

	store := telemetry.NewStore(config.TargetPower)
	driveMemory := memory.NewDriveMemory()

	statistics.Register(statistics.NewControllerCollector(store, driveMemory))

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	{
		enabled := config.Statistics.Enabled
		if enabled {
			// === Prometheus Exporter
			g.Add(func() error {
				port := config.Statistics.Port
				endpoint := "/metrics"
				addr := fmt.Sprintf(":%d", port)
				mux := http.NewServeMux()
				mux.Handle(endpoint, promhttp.Handler())
				server := &http.Server{Addr: addr, Handler: mux}
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					ui.Error("Cannot start prometheus metrics endpoint (%s)", err.Error())
				}
				<-ctx.Done()
				return nil
			}, func(err error) {
				if err != nil {
					ui.Warning("Error stopping statistics server: " + err.Error())
				} else {
					ui.Info("Statistics server stopped.")
				}
			})
		}
	}
	{
		// === REST api
		echoRest := api.CreateRestService(store, config.Api.Key, prometheus.DefaultRegisterer)

		g.Add(func() error {
			addr := fmt.Sprintf("%s:%d", config.Api.Host, config.Api.Port)
			if err := echoRest.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				ui.Error("Cannot start REST api endpoint (%s)", err.Error())
			}
			<-ctx.Done()
			return nil
		}, func(err error) {
			timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer timeoutCancel()
			if shutdownErr := echoRest.Shutdown(timeoutCtx); shutdownErr != nil {
				ui.Warning("Error stopping REST api: %v", shutdownErr)
			} else {
				ui.Info("REST api stopped.")
			}
		})
	}
	{
		// === power controller
		powerController := controller.NewPowerController(channel, driveMemory, store, config.Controller)

		g.Add(func() error {
			err := powerController.Run(ctx)
			ui.Info("Power controller stopped.")
			return err
		}, func(err error) {
			if err != nil {
				ui.Warning("Power controller failed: %v", err)
			}
		})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			<-sig
			ui.Info("Received SIGTERM signal, exiting...")
			return nil
		}, func(err error) {
			defer close(sig)
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
