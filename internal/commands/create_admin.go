// Package commands implements the CLI subcommands.
package commands

import (
	"flag"
	"fmt"
	"os"

	"visitas/internal/config"
	"visitas/internal/db"
	"visitas/internal/models"
	"visitas/internal/services"

	"github.com/sirupsen/logrus"
)

// RunCreateAdmin creates an administrator account from the command line.
// Usage: visitas create-admin --name "..." --email "..." --password "..."
func RunCreateAdmin(args []string) {
	fs := flag.NewFlagSet("create-admin", flag.ExitOnError)
	name := fs.String("name", "", "administrator name")
	email := fs.String("email", "", "administrator email")
	password := fs.String("password", "", "administrator password (min 8 characters)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *name == "" || *email == "" || *password == "" {
		fmt.Println("create-admin requires --name, --email and --password")
		fs.Usage()
		os.Exit(1)
	}

	configManager, err := config.NewManager()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	database, err := db.NewDB(configManager)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(&models.User{}); err != nil {
		logrus.Fatalf("Database migration failed: %v", err)
	}

	authService := services.NewAuthService(database, configManager)
	user, err := authService.CreateUser(services.CreateUserParams{
		Name:     *name,
		Email:    *email,
		Password: *password,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		logrus.Fatalf("Failed to create administrator: %v", err)
	}

	fmt.Printf("Administrator created: %s <%s> (id=%d)\n", user.Name, user.Email, user.ID)
}
