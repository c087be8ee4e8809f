package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"poolpump/internal/handlers"
	"poolpump/internal/logger"
	"poolpump/internal/pentair"
	"poolpump/internal/pump"
	"poolpump/internal/repository"
	"poolpump/internal/server"
	"poolpump/internal/service"
)

func main() {
	// load config.yml first; the log level lives there
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(viper.GetString("log.level"))

	// open DB (audit log + users only; pump state is never persisted)
	db, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// open the one pump driver; every request shares it through a Session
	drv, err := openDriver(log)
	if err != nil {
		log.Fatalw("failed to open pump driver", "err", err)
	}
	session := pump.NewSession(drv)
	defer func() {
		if cerr := session.Close(); cerr != nil {
			log.Errorw("failed to close pump driver", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(db)
	services := service.NewService(session, repos, viper.GetString("auth.signing_key"))
	apiHandler := handlers.NewHandler(services, log, viper.GetString("static.dir"))

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "poolpump.db")
		dbPath = "poolpump.db"
	}
	return repository.InitDB(dbPath)
}

// openDriver connects to the pump on the configured serial port, or hands
// back the simulated pump when serial.simulated is set.
func openDriver(log *logger.Logger) (pump.Driver, error) {
	if viper.GetBool("serial.simulated") {
		log.Infow("serial.simulated set; using in-memory pump")
		return pump.NewSimDriver(), nil
	}
	cfg := pentair.Config{
		Port:        viper.GetString("serial.port"),
		Baud:        viper.GetInt("serial.baud"),
		PumpAddress: byte(viper.GetUint("serial.pump_address")),
	}
	log.Infow("opening pump serial port", "port", cfg.Port, "baud", cfg.Baud, "address", cfg.PumpAddress)
	return pentair.Open(cfg)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8000"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
