package main

import (
	"flag"
	"log"
	"strings"

	"discovery-space/internal/config"
	"discovery-space/internal/db"
	"discovery-space/internal/server"
)

func main() {
	username := flag.String("user", "", "staff username to create or reset")
	password := flag.String("password", "", "password for -user")
	membersPath := flag.String("members", "", "optional members csv (first_name,last_name,card_number)")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	conn, err := db.Open(config.Load())
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	if err := db.SeedGameModes(conn); err != nil {
		log.Fatalf("seed game modes: %v", err)
	}
	log.Printf("game modes seeded")

	if name := strings.TrimSpace(*username); name != "" {
		if *password == "" {
			log.Fatal("-password is required with -user")
		}
		hash, err := server.HashPassword(*password)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		user := db.User{Username: name, PasswordHash: hash}
		err = conn.Create(&user).Error
		if db.IsUniqueViolation(err) {
			err = conn.Model(&db.User{}).Where("username = ?", name).Update("password_hash", hash).Error
			log.Printf("staff user password reset username=%s", name)
		} else if err == nil {
			log.Printf("staff user created username=%s", name)
		}
		if err != nil {
			log.Fatalf("save user: %v", err)
		}
	}

	if *membersPath != "" {
		inserted, err := db.LoadMembers(conn, *membersPath)
		if err != nil {
			log.Fatalf("load members: %v", err)
		}
		log.Printf("loaded members count=%d", inserted)
	}
}
