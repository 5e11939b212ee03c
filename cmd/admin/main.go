package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"talentdash/internal/auth"
	"talentdash/internal/config"
	"talentdash/internal/database"
	"talentdash/internal/store"
)

func main() {
	var (
		username      = flag.String("username", "", "create a recruiter account with this username")
		seedDemo      = flag.Bool("seed-demo", false, "load the demo jobs, candidates and activities")
		resetSettings = flag.Bool("reset-settings", false, "restore all settings to their defaults")
	)
	flag.Parse()

	u := strings.TrimSpace(*username)
	if u == "" && !*seedDemo && !*resetSettings {
		log.Fatal("nothing to do: pass --username, --seed-demo or --reset-settings")
	}

	cfg := config.MustLoad()
	if !cfg.Database.Configured() {
		log.Fatal("admin commands require a configured database")
	}

	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	ctx := context.Background()
	st := store.NewGorm(db)

	if u != "" {
		createUser(db, u)
	}
	if *seedDemo {
		if err := store.SeedDemo(ctx, st); err != nil {
			log.Fatalf("seed demo data: %v", err)
		}
		fmt.Println("demo data seeded")
	}
	if *resetSettings {
		if err := st.ResetSettings(ctx); err != nil {
			log.Fatalf("reset settings: %v", err)
		}
		fmt.Println("settings reset to defaults")
	}
}

func createUser(db *gorm.DB, username string) {
	var existing database.User
	switch err := db.Where("username = ?", username).First(&existing).Error; {
	case err == nil:
		log.Fatalf("user %q already exists", username)
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		log.Fatalf("query user: %v", err)
	}

	password, err := generateRandomPassword(24)
	if err != nil {
		log.Fatalf("generate password: %v", err)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	user := database.User{
		Username:     username,
		PasswordHash: hashed,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("create user: %v", err)
	}

	fmt.Printf("recruiter account created:\n")
	fmt.Printf("username: %s\n", username)
	fmt.Printf("password: %s\n", password)
	fmt.Printf("note: the password is shown only once.\n")
}

func generateRandomPassword(bytesLen int) (string, error) {
	if bytesLen <= 0 {
		bytesLen = 24
	}
	buf := make([]byte, bytesLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
