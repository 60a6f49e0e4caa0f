package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/config"
	"github.com/2beens/liftlog/internal/db"

	log "github.com/sirupsen/logrus"
)

// creates an app user; the password is read from LIFTLOG_NEW_USER_PASS
// so it stays out of the shell history
func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	email := flag.String("email", "", "email of the new user")
	displayName := flag.String("name", "", "display name of the new user")
	flag.Parse()

	if *email == "" {
		log.Fatalln("email not specified")
	}
	password := os.Getenv("LIFTLOG_NEW_USER_PASS")
	if password == "" {
		log.Fatalln("password not set. use LIFTLOG_NEW_USER_PASS")
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     os.Getenv("LIFTLOG_DB_USER"),
		DBPassword: os.Getenv("LIFTLOG_DB_PASS"),
	})
	if err != nil {
		log.Fatalf("new db pool: %s", err)
	}
	defer dbPool.Close()

	// registering does not touch sessions, so no redis client
	authService := auth.NewAuthService(auth.NewUsersRepo(dbPool), auth.DefaultTTL, nil)
	user, err := authService.Register(ctx, auth.Credentials{Email: *email, Password: password}, *displayName)
	if err != nil {
		log.Fatalf("register [%s]: %s", *email, err)
	}

	log.Infof("user [%s] created with id [%s]", user.Email, user.ID)
}
