package main

import (
	"log"
	"os"

	"github.com/darasa-app/backend/core"
	"github.com/darasa-app/backend/core/user"
	"github.com/darasa-app/backend/storage/database"
)

var logger *log.Logger // todo: logger service

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	workDir, err := os.Getwd()
	errAndDie(err)
	conf, err := core.NewConfig(workDir)
	errAndDie(err)

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()

	gateway := database.NewManager(db)

	// start CLI
	cli := commandLine{
		conf:   conf,
		db:     db,
		gw:     gateway,
		usrSvc: user.NewService(gateway),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
