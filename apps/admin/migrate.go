package main

import (
	"github.com/darasa-app/backend/storage/database"
)

var (
	createDBFunc = database.CreateIfNotExist // mockable
	migrateFunc  = database.Migrate
)

func (cli *commandLine) createDB() error {
	return createDBFunc(cli.conf)
}

func (cli *commandLine) migrate() error {
	return migrateFunc(cli.db.DB)
}
