package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"heater_control/internal/actuator"
	"heater_control/internal/clock"
	"heater_control/internal/controller"
	"heater_control/internal/handlers"
	"heater_control/internal/i2c"
	"heater_control/internal/logger"
	"heater_control/internal/repository"
	"heater_control/internal/sensor"
	"heater_control/internal/server"
	"heater_control/internal/service"

	"github.com/spf13/viper"
)

func main() {
	// load config.yml, then init logger at the configured level
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(viper.GetString("logLevel"))

	// open DB
	db, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// build sensor and actuator per configuration
	sens, act, err := buildDrivers(log)
	if err != nil {
		log.Fatalw("failed to init drivers", "err", err)
	}

	cfg := controllerConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalw("invalid controller config", "err", err)
	}

	// wire dependencies
	repos := repository.NewRepository(db)
	services, err := service.NewService(service.Deps{
		Repos:      repos,
		Config:     cfg,
		Sensor:     sens,
		Actuator:   act,
		Clock:      clock.NewMonotonic(),
		Log:        log,
		SigningKey: viper.GetString("auth.signing_key"),
	})
	if err != nil {
		log.Fatalw("failed to wire services", "err", err)
	}
	apiHandler := handlers.NewHandler(services, cfg, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start the control loop ticker (disarmed until POST /heater/start)
	go services.Loop.Run(ctx, pollInterval())

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, act, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")

	viper.SetDefault("port", "8080")
	viper.SetDefault("logLevel", logger.InfoLevel)
	viper.SetDefault("sensor.type", "sim")
	viper.SetDefault("sensor.bus", "/dev/i2c-1")
	viper.SetDefault("sensor.addr", int(sensor.DefaultLM75Addr))
	viper.SetDefault("gpio.chip", "gpiochip0")
	viper.SetDefault("gpio.heater_pin", actuator.DefaultHeaterPin)
	viper.SetDefault("gpio.warning_pin", actuator.DefaultWarningPin)
	viper.SetDefault("controller.target_c", 40.0)
	viper.SetDefault("controller.hysteresis_c", 2.0)
	viper.SetDefault("controller.overheat_c", 50.0)
	viper.SetDefault("controller.stabilizing_ms", 5000)
	viper.SetDefault("controller.overheat_recovery_margin_c", 0.0)
	viper.SetDefault("controller.poll_interval", "1s")

	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "app.db")
		dbPath = "app.db"
	}
	return repository.InitDB(dbPath)
}

// controllerConfig reads the control-law thresholds from configuration.
func controllerConfig() controller.Config {
	return controller.Config{
		TargetC:                 viper.GetFloat64("controller.target_c"),
		HysteresisC:             viper.GetFloat64("controller.hysteresis_c"),
		OverheatC:               viper.GetFloat64("controller.overheat_c"),
		StabilizingMillis:       viper.GetUint64("controller.stabilizing_ms"),
		OverheatRecoveryMarginC: viper.GetFloat64("controller.overheat_recovery_margin_c"),
	}
}

func pollInterval() time.Duration {
	d := viper.GetDuration("controller.poll_interval")
	if d <= 0 {
		d = time.Second
	}
	return d
}

// buildDrivers constructs the temperature sensor and the output actuator
// selected by sensor.type. "sim" runs a software plant that feeds its own
// heater command back into the reported temperature, so the whole stack
// works without hardware. "lm75" reads a real probe over i2c-dev and
// drives GPIO lines.
func buildDrivers(log *logger.Logger) (sensor.Sensor, actuator.Actuator, error) {
	switch kind := viper.GetString("sensor.type"); kind {
	case "sim":
		plant := service.NewPlant()
		log.Infow("using simulated plant", "ambient_c", service.PlantAmbientC)
		return plant, plant, nil

	case "lm75":
		bus, err := i2c.Open(viper.GetString("sensor.bus"))
		if err != nil {
			return nil, nil, err
		}
		addr := uint16(viper.GetInt("sensor.addr"))
		gpio, err := actuator.NewGPIO(
			viper.GetString("gpio.chip"),
			viper.GetInt("gpio.heater_pin"),
			viper.GetInt("gpio.warning_pin"),
		)
		if err != nil {
			_ = bus.Close()
			return nil, nil, err
		}
		log.Infow("using lm75 sensor", "bus", viper.GetString("sensor.bus"), "addr", fmt.Sprintf("0x%02x", addr))
		return sensor.NewLM75(bus, addr), gpio, nil

	default:
		return nil, nil, fmt.Errorf("unsupported sensor.type %q (want sim or lm75)", kind)
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals, stops the loop, drains
// the HTTP server and forces the outputs low before exit.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, act actuator.Actuator, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down...")

	// stop the control loop first so nothing re-energizes the heater
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}

	// Close de-energizes heater and warning lines on the GPIO backend.
	if err := act.Close(); err != nil {
		log.Errorw("failed to release actuator", "err", err)
	}
}
