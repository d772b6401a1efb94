package main

import (
	"log"
	"os"

	echoapi "github.com/tumaini/malengo/apps/api/echo"
	"github.com/tumaini/malengo/core"
	"github.com/tumaini/malengo/core/goal"
	"github.com/tumaini/malengo/core/moderation"
	"github.com/tumaini/malengo/core/user"
	emailsvc "github.com/tumaini/malengo/services/email"
	geminisvc "github.com/tumaini/malengo/services/gemini"
	logsvc "github.com/tumaini/malengo/services/logger"
	"github.com/tumaini/malengo/storage/database"
	sqlxrepos "github.com/tumaini/malengo/storage/database/sqlx"
)

func main() {
	std := log.New(os.Stdout, core.Conf.AppName+" ", log.LstdFlags|log.Lshortfile)

	// set up services
	var logger core.Logger
	var mailSvc core.EmailService
	if core.Conf.Debug {
		logger = logsvc.NewStdLogger(std)
		mailSvc = emailsvc.NewConsoleService(core.Conf)
	} else {
		logger = logsvc.NewRollbarLogger(std, core.Conf)
		mailSvc = emailsvc.NewSendgridService(core.Conf, logger)
	}

	// set up DB
	db, err := database.Open(core.Conf)
	if err != nil {
		std.Fatalf("%+v", err)
	}
	defer func() { _ = db.Close() }()

	if err = database.Migrate(db.DB); err != nil {
		std.Fatalf("%+v", err)
	}

	usrRepo := sqlxrepos.NewUserRepository(db)
	goalRepo := sqlxrepos.NewGoalRepository(db)

	usrSvc := user.NewService(core.Conf, usrRepo, mailSvc)
	goalSvc := goal.NewService(goalRepo)
	modSvc := moderation.NewService(usrRepo, moderation.NewGateway(geminisvc.NewService(core.Conf)))

	// start API server
	app := echoapi.NewServer(&echoapi.Options{
		Addr:    core.Conf.Server.Address(),
		Logger:  logger,
		UserSvc: usrSvc,
		GoalSvc: goalSvc,
		ModSvc:  modSvc,
	})
	app.Start()
}
