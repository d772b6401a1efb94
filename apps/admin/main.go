package main

import (
	"log"
	"os"

	"github.com/tumaini/malengo/core"
	"github.com/tumaini/malengo/storage/database"
	sqlxrepos "github.com/tumaini/malengo/storage/database/sqlx"
)

func main() {
	std := log.New(os.Stdout, core.Conf.AppName+"-admin ", log.LstdFlags)

	if err := database.CreateIfNotExist(core.Conf); err != nil {
		std.Fatalf("%+v", err)
	}
	db, err := database.Open(core.Conf)
	if err != nil {
		std.Fatalf("%+v", err)
	}
	defer func() { _ = db.Close() }()

	cli := &commandLine{
		db:      db,
		usrRepo: sqlxrepos.NewUserRepository(db),
	}
	if err := cli.run(os.Args); err != nil && err != errHelp {
		std.Fatalf("%+v", err)
	}
}
