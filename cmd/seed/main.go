package main

import (
	"context"
	"log"
	"os"

	"taskboard/internal/db"
	"taskboard/internal/domain"
	"taskboard/internal/repository"
	"taskboard/internal/service"
)

// Seeds a few user profiles when the user table is empty, then prints an
// admin token for the administrative endpoints.
func main() {
	// expects DATABASE_URL and JWT_SECRET env vars
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	repo := repository.NewUserRepository(pool)
	ctx := context.Background()

	existing, err := repo.List(ctx)
	if err != nil {
		log.Fatalf("list users failed: %v", err)
	}

	if len(existing) > 0 {
		log.Printf("users already present (%d), skipping seed\n", len(existing))
	} else {
		seed := []domain.User{
			{Name: "Ada", Color: "#e91e63"},
			{Name: "Brian", Color: "#2196f3"},
			{Name: "Cleo", Color: "#4caf50"},
		}
		for i := range seed {
			if err := repo.Create(ctx, &seed[i]); err != nil {
				log.Fatalf("create user failed: %v", err)
			}
			log.Printf("user created id=%d name=%s\n", seed[i].ID, seed[i].Name)
		}
	}

	service.InitJWT()
	token, err := service.GenerateAdminToken()
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}
	log.Printf("admin token=%s\n", token)
}
