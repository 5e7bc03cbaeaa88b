package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Baru2006/EasyRecharge-MM/internal/common/enum"
	types "github.com/Baru2006/EasyRecharge-MM/internal/common/type"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/jwt"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/logger"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/validation"
	"github.com/joho/godotenv"
)

// token issues a bearer token for a reseller or a named customer account.
// It signs with JWT_SECRET from the environment or .env.
func main() {
	id := flag.String("id", "", "account id (required)")
	name := flag.String("name", "", "display name")
	role := flag.String("role", string(enum.RESELLER), "customer or reseller")
	flag.Parse()

	// stdout carries only the token
	logger.SetupWithWriter(os.Stderr, os.Stderr)
	_ = godotenv.Load()

	user := types.UserWithAuth{ID: *id, Name: *name, Role: enum.Role(*role)}
	if err := validation.Validate(user); err != nil {
		logger.Error.Println("Invalid account:", err)
		os.Exit(2)
	}

	token, exp, err := jwt.GenerateToken(user)
	if err != nil {
		logger.Error.Println("Failed to issue token:", err)
		os.Exit(1)
	}

	fmt.Println(token)
	logger.Info.Printf("Token for %s (%s) expires %s", user.ID, user.Role, exp.Format(time.RFC3339))
}
