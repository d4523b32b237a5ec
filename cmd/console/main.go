package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"userhub/internal/clients/userapi"
	"userhub/internal/config"
	"userhub/internal/logging"
	"userhub/internal/ui"
)

const help = `commands:
  list               reload users
  name <value>       set the form name
  email <value>      set the form email
  save               add the user, or update the one being edited
  edit <id>          load a user into the form
  cancel             abandon the current edit
  delete <id>        delete a user (asks for confirmation)
  help               show this text
  quit               exit`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadClient()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Logs go to stderr so they do not interleave with the rendered screen.
	zcfg := zap.NewDevelopmentConfig()
	zcfg.OutputPaths = []string{"stderr"}
	zl, err := zcfg.Build()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	logger := logging.FromZap(zl.With(zap.String("service", "userhub-console")))
	defer logging.Sync(logger)

	api, err := userapi.New(cfg.BaseURL, cfg.Timeout, logger)
	if err != nil {
		logger.Error("failed to init api client", "error", err)
		os.Exit(1)
	}

	in := bufio.NewScanner(os.Stdin)
	confirm := ui.ConfirmFunc(func(prompt string) bool {
		fmt.Printf("%s [y/N] ", prompt)
		if !in.Scan() {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(in.Text()))
		return answer == "y" || answer == "yes"
	})

	app := ui.NewApp(api, confirm, logger)
	defer app.Close()

	app.Mount(ctx)
	render(app, os.Stdout)
	fmt.Println(help)

	for {
		fmt.Print("> ")
		if !in.Scan() || ctx.Err() != nil {
			return
		}
		if quit := dispatch(ctx, app, in.Text()); quit {
			return
		}
		render(app, os.Stdout)
	}
}

// dispatch runs one command line against the app and reports whether to exit.
func dispatch(ctx context.Context, app *ui.App, line string) bool {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "":
	case "quit", "exit":
		return true
	case "help":
		fmt.Println(help)
	case "list":
		app.Mount(ctx)
	case "name":
		app.SetName(arg)
	case "email":
		app.SetEmail(arg)
	case "save":
		app.Submit(ctx)
	case "cancel":
		app.Cancel()
	case "edit":
		u, ok := findUser(app, arg)
		if !ok {
			fmt.Printf("no user with id %q\n", arg)
			return false
		}
		app.Edit(u)
	case "delete":
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			fmt.Printf("invalid id %q\n", arg)
			return false
		}
		app.Delete(ctx, id)
	default:
		fmt.Printf("unknown command %q, type help\n", cmd)
	}
	return false
}

func findUser(app *ui.App, arg string) (userapi.User, bool) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return userapi.User{}, false
	}
	for _, u := range app.State().Users {
		if u.ID == id {
			return u, true
		}
	}
	return userapi.User{}, false
}

func render(app *ui.App, w io.Writer) {
	if err := app.Render(w); err != nil {
		fmt.Fprintln(os.Stderr, "render:", err)
	}
}
