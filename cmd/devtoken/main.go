// Command devtoken seeds local profiles and prints access tokens for them,
// signed with JWT_SECRET so the API accepts them without the auth service.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/idea-hub/internal/adapter/repository"
	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	"github.com/johnquangdev/idea-hub/internal/infrastructure/database"
	"github.com/johnquangdev/idea-hub/pkg/config"
	"github.com/johnquangdev/idea-hub/pkg/jwt"
)

type devUser struct {
	Email string
	Name  string
	Role  entities.UserRole
}

var defaultUsers = []devUser{
	{Email: "admin@test.local", Name: "Admin", Role: entities.RoleAdmin},
	{Email: "alice@test.local", Name: "Alice", Role: entities.RoleMember},
	{Email: "bob@test.local", Name: "Bob", Role: entities.RoleMember},
}

func main() {
	seed := flag.Bool("seed", true, "store the profiles in the database")
	email := flag.String("email", "", "mint a single token for this email instead of the default users")
	admin := flag.Bool("admin", false, "with -email, give the token the admin role")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatalf("devtoken refuses to run with ENVIRONMENT=production")
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	ctx := context.Background()

	users := defaultUsers
	if *email != "" {
		role := entities.RoleMember
		if *admin {
			role = entities.RoleAdmin
		}
		name, _, _ := strings.Cut(*email, "@")
		users = []devUser{{Email: *email, Name: name, Role: role}}
	}

	var userRepo interface {
		Upsert(ctx context.Context, user *entities.User) error
	}
	if *seed {
		db, err := database.NewPostgresDB(ctx, cfg, logger)
		if err != nil {
			logger.Fatal("❌ Failed to connect to database", zap.Error(err))
		}
		defer func() { _ = database.CloseDB(db) }()
		userRepo = repository.NewUserRepository(db)
	}

	tokens := jwt.NewManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenExpiry)
	for _, u := range users {
		// stable ids so repeated runs keep the same accounts
		id := uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+u.Email))

		if userRepo != nil {
			profile := &entities.User{ID: id, Email: u.Email, FullName: u.Name, Role: u.Role}
			if err := userRepo.Upsert(ctx, profile); err != nil {
				logger.Error("❌ Failed to store profile", zap.String("email", u.Email), zap.Error(err))
				continue
			}
		}

		token, err := tokens.GenerateAccessToken(id, u.Email, string(u.Role), u.Name)
		if err != nil {
			logger.Error("❌ Failed to sign token", zap.String("email", u.Email), zap.Error(err))
			continue
		}
		fmt.Printf("%s (%s, %s)\n%s\n\n", u.Name, u.Email, u.Role, token)
	}
}
