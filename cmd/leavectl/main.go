package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"leavectl/internal/api"
	"leavectl/internal/config"
	"leavectl/internal/session"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	client := api.New(cfg.APIBaseURL, &http.Client{Timeout: cfg.HTTPTimeout})
	store := session.NewStorage(cfg.StateDir, cfg.SealSession)
	mgr := session.NewManager(client, store, nil)
	client.SetTokenSource(mgr.Token)
	client.SetRefreshFunc(func(ctx context.Context) error {
		_, err := mgr.Refresh(ctx)
		return err
	})
	mgr.Initialize()

	app := &app{client: client, session: mgr}

	args := os.Args[1:]
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	var err error
	switch args[0] {
	case "login":
		err = app.login(ctx, args[1:])
	case "logout":
		mgr.Logout()
		fmt.Println("signed out")
	case "whoami":
		err = app.whoami()
	case "leaves":
		err = app.leaves(ctx, args[1:])
	case "holidays":
		err = app.holidays(ctx, args[1:])
	case "report":
		err = app.report(ctx, args[1:])
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Print(`leavectl - leave management client

Usage:
  leavectl login --email <email> [--password <password>]
  leavectl logout
  leavectl whoami
  leavectl leaves list [--team]
  leavectl leaves create --type <type> --start <date> --end <date> --reason <text>
  leavectl leaves edit --id <id> [--type <type>] [--start <date>] [--end <date>] [--reason <text>]
  leavectl leaves retract --id <id>
  leavectl leaves approve --id <id> [--comment <text>]
  leavectl leaves reject --id <id> --comment <text>
  leavectl holidays [--year <year>] [--upcoming]
  leavectl holidays add --name <name> --date <date>
  leavectl holidays rm --id <id>
  leavectl report --out <file.pdf>

Configuration comes from the environment (or a .env file):
  LEAVE_API_URL, LEAVE_STATE_DIR, LEAVE_HTTP_TIMEOUT, LEAVE_SESSION_SEALED
`)
}
