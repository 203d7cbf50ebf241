// Command adduser creates an account directly in the database, bypassing the
// HTTP registration endpoint.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"expense-api/internal/config"
	"expense-api/internal/database"
	"expense-api/internal/store"
	"expense-api/internal/util"

	"github.com/joho/godotenv"
	"golang.org/x/term"
)

func main() {
	_ = godotenv.Load()

	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	email := fs.String("email", "", "Email address")
	name := fs.String("name", "", "Full name")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	configPath := fs.String("config", "", "Path to YAML config file")
	dbPath := fs.String("db", "", "Path to database file (overrides config)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	var missing []string
	if *email == "" {
		missing = append(missing, "email")
	}
	if *name == "" {
		missing = append(missing, "name")
	}
	if len(missing) > 0 {
		fmt.Fprintln(stdout, "Usage: adduser -email <email> -name <full name> [-password <password>] [-config <file>] [-db <db_path>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: %s", strings.Join(missing, ", "))
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout)
	}
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password cannot be empty")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	users := store.NewUsers(db, util.NewPasswordHasher(cfg.Security.BcryptCost))
	user, err := users.Create(context.Background(), strings.TrimSpace(*email), strings.TrimSpace(*name), password)
	if errors.Is(err, store.ErrDuplicateEmail) {
		return fmt.Errorf("user %s already exists", *email)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintf(stdout, "User %s created successfully with ID %d\n", user.Email, user.ID)
	return nil
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	// pipes and tests
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
