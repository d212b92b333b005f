package main

import (
	"context"
	"fmt"
	"log"
	"os"

	echoapi "github.com/darasa-app/backend/apps/api/echo"
	"github.com/darasa-app/backend/core"
	"github.com/darasa-app/backend/core/auth"
	"github.com/darasa-app/backend/core/course"
	"github.com/darasa-app/backend/core/grade"
	"github.com/darasa-app/backend/core/user"
	emailsvc "github.com/darasa-app/backend/services/email"
	logsvc "github.com/darasa-app/backend/services/logger"
	"github.com/darasa-app/backend/storage/database"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	workDir, err := os.Getwd()
	if err != nil {
		log.Fatalf("getting working directory: %v", err)
	}
	conf, err := core.NewConfig(workDir)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up DB
	db, err := database.Open(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			logger.Error(fmt.Sprintf("closing database: %v", err), err)
		}
	}()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	gateway := database.NewManager(db)
	userSvc := user.NewService(gateway)
	authSvc := auth.NewService(gateway, userSvc)
	courseSvc := course.NewService(gateway)
	gradeSvc := grade.NewService(gateway, userSvc, courseSvc, logger)

	// =========================================================================
	// Start API Service

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	server := echoapi.NewServer(echoapi.ServerDeps{
		Conf:      conf,
		Logger:    logger,
		EmailSvc:  mailSvc,
		AuthSvc:   authSvc,
		UserSvc:   userSvc,
		CourseSvc: courseSvc,
		GradeSvc:  gradeSvc,
	})

	go server.Start()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
