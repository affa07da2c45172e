// Copyright (c) 2026 ClaimPoint. All rights reserved.

// Command claimpoint is the terminal client for the ClaimPoint API.
//
// # Commands
//
//	login    -email -password      authenticate and persist the session
//	register -name -email -phone -password
//	                               create an account, then verify the emailed
//	                               code interactively in the same run
//	resend   -email                re-issue the verification code
//	items    [-q query]            browse the found-item catalogue
//	whoami                         show the current session
//	logout                         clear the session
//
// Every run starts with a silent verification of any persisted token; a
// rejected token clears the stored session without surfacing an error.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/claimpoint/claimpoint/internal/client/api"
	clientconfig "github.com/claimpoint/claimpoint/internal/client/config"
	"github.com/claimpoint/claimpoint/internal/client/credstore"
	"github.com/claimpoint/claimpoint/internal/client/route"
	"github.com/claimpoint/claimpoint/internal/client/session"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "claimpoint:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("claimpoint", flag.ContinueOnError)
	configPath := global.String("config", "", "path to a JSON config file")
	baseURL := global.String("api", "", "API base URL (overrides config)")
	if err := global.Parse(args); err != nil {
		return err
	}

	if global.NArg() == 0 {
		global.Usage()
		return fmt.Errorf("missing command")
	}

	cfg, err := clientconfig.Load(*configPath)
	if err != nil {
		return err
	}
	if *baseURL != "" {
		cfg.BaseURL = *baseURL
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	if err := os.MkdirAll(filepath.Dir(cfg.CredentialPath), 0o700); err != nil {
		return fmt.Errorf("credential directory: %w", err)
	}

	ctx := context.Background()

	store, err := credstore.Open(ctx, cfg.CredentialPath)
	if err != nil {
		return err
	}
	defer store.Close()

	gateway := api.NewClient(cfg.BaseURL, &http.Client{Timeout: cfg.RequestTimeout})
	controller := session.NewController(gateway, store, logger)

	// Silent startup check. A rejected token quietly clears the session.
	if err := controller.StartupVerify(ctx); err != nil {
		return err
	}

	command := global.Arg(0)
	rest := global.Args()[1:]

	switch command {
	case "login":
		return cmdLogin(ctx, controller, rest)
	case "register":
		return cmdRegister(ctx, controller, rest)
	case "resend":
		return cmdResend(ctx, controller, rest)
	case "items":
		return cmdItems(ctx, controller, rest)
	case "whoami":
		return cmdWhoami(controller)
	case "logout":
		return cmdLogout(ctx, controller)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func cmdLogin(ctx context.Context, controller *session.Controller, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("login requires -email and -password")
	}

	if err := controller.Login(ctx, *email, *password); err != nil {
		return fmt.Errorf("%s", controller.Snapshot().AuthError)
	}

	snapshot := controller.Snapshot()
	fmt.Printf("Signed in as %s (%s)\n", snapshot.Profile.FullName, snapshot.Role)
	fmt.Println("View:", route.Resolve(route.RouteDashboard, snapshot.Token, snapshot.Role))
	return nil
}

func cmdRegister(ctx context.Context, controller *session.Controller, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "account email")
	phone := fs.String("phone", "", "phone number")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" || *email == "" || *phone == "" || *password == "" {
		return fmt.Errorf("register requires -name, -email, -phone and -password")
	}

	err := controller.Register(ctx, api.RegisterInput{
		FullName: *name,
		Email:    *email,
		Phone:    *phone,
		Password: *password,
	})
	if err != nil {
		return fmt.Errorf("%s", controller.Snapshot().AuthError)
	}

	fmt.Printf("Account created. A verification code was sent to %s.\n", *email)

	// The pending registration lives only in this process, so the code is
	// collected here rather than in a separate invocation.
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("Enter the code (or 'resend', or 'quit'): ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())

		switch input {
		case "quit":
			return fmt.Errorf("verification abandoned")
		case "resend":
			if err := controller.ResendOtp(ctx, *email); err != nil {
				fmt.Println("Resend failed:", err)
			} else {
				fmt.Println("A new code is on its way.")
			}
			continue
		}

		if err := controller.VerifyOtp(ctx, input); err != nil {
			fmt.Println("Verification failed:", controller.Snapshot().AuthError)
			continue
		}

		snapshot := controller.Snapshot()
		fmt.Printf("Email verified. Signed in as %s (%s).\n", snapshot.Profile.FullName, snapshot.Role)
		return nil
	}
}

func cmdResend(ctx context.Context, controller *session.Controller, args []string) error {
	fs := flag.NewFlagSet("resend", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return fmt.Errorf("resend requires -email")
	}

	if err := controller.ResendOtp(ctx, *email); err != nil {
		return err
	}

	fmt.Println("If this email is registered, a new code has been sent.")
	return nil
}

func cmdItems(ctx context.Context, controller *session.Controller, args []string) error {
	fs := flag.NewFlagSet("items", flag.ContinueOnError)
	query := fs.String("q", "", "filter by name or location")
	if err := fs.Parse(args); err != nil {
		return err
	}

	controller.RefreshItems(ctx)
	snapshot := controller.Snapshot()

	shown := 0
	for _, item := range snapshot.Items {
		if *query != "" && !matches(item, *query) {
			continue
		}
		fmt.Printf("%-36s  %-10s  %-24s  %s\n", item.ID, item.Status, item.Name, item.Location)
		shown++
	}

	if shown == 0 {
		fmt.Println("No items found.")
	}
	return nil
}

func matches(item api.FoundItem, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(item.Name), q) ||
		strings.Contains(strings.ToLower(item.Location), q)
}

func cmdWhoami(controller *session.Controller) error {
	snapshot := controller.Snapshot()
	if !snapshot.Authenticated() {
		fmt.Println("Not signed in.")
		fmt.Println("View:", route.Resolve(route.RouteDashboard, snapshot.Token, snapshot.Role))
		return nil
	}

	fmt.Printf("Signed in as %s <%s>\n", snapshot.Profile.FullName, snapshot.Profile.Email)
	fmt.Println("Role:", snapshot.Role)
	fmt.Println("View:", route.Resolve(route.RouteDashboard, snapshot.Token, snapshot.Role))
	return nil
}

func cmdLogout(ctx context.Context, controller *session.Controller) error {
	if err := controller.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("Signed out.")
	return nil
}
