// Command authdemo walks one account through its whole lifecycle against a
// Supabase-compatible auth service: signup, sign in, user info, token
// refresh, logout and deletion. Point it at a project with SUPABASE_URL and
// SUPABASE_ANON_KEY; deletion steps need SUPABASE_SERVICE_ROLE_KEY too.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/supaflow/supabase-auth-go/pkg/authsdk"
	"github.com/supaflow/supabase-auth-go/pkg/httpx"
	"github.com/supaflow/supabase-auth-go/pkg/slogx"
)

const BuildVersion = "v0.1.0"

type config struct {
	APIURL         string
	AnonKey        string
	ServiceRoleKey string
	Email          string
	Password       string
	Env            string
	LogLevel       string
	LogFormat      string
}

func loadConfig() config {
	return config{
		APIURL:         os.Getenv("SUPABASE_URL"),
		AnonKey:        os.Getenv("SUPABASE_ANON_KEY"),
		ServiceRoleKey: os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		Email:          getEnvOrDefault("DEMO_EMAIL", fmt.Sprintf("demo+%d@example.com", time.Now().Unix())),
		Password:       getEnvOrDefault("DEMO_PASSWORD", "correct horse battery staple"),
		Env:            getEnvOrDefault("ENV", "dev"),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:      getEnvOrDefault("LOG_FORMAT", "text"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	logger := slogx.New(slogx.Config{
		Service: "authdemo",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	if cfg.APIURL == "" || cfg.AnonKey == "" {
		logger.Error("SUPABASE_URL and SUPABASE_ANON_KEY must be set")
		os.Exit(1)
	}

	client, err := authsdk.NewBuilder().
		APIURL(cfg.APIURL).
		AnonKey(cfg.AnonKey).
		ServiceRoleKey(cfg.ServiceRoleKey).
		HTTPClient(&http.Client{
			Transport: httpx.NewRateLimitedTransport(nil, httpx.DefaultClientLimit),
			Timeout:   10 * time.Second,
		}).
		Logger(logger).
		Build()
	if err != nil {
		logger.Error("build client", "err", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	user, accessToken, err := client.Signup(
		ctx,
		authsdk.EmailIdentifier(cfg.Email),
		cfg.Password,
		map[string]any{"source": "authdemo"},
	)
	if err != nil {
		logger.Error("signup", "err", err)
		os.Exit(1)
	}
	logger.Info("signed up", "user_id", user.ID.String(), "email", cfg.Email)

	tokens, err := client.SigninWithPassword(ctx, authsdk.EmailIdentifier(cfg.Email), cfg.Password)
	if err != nil {
		logger.Error("signin", "err", err)
		os.Exit(1)
	}
	logger.Info("signed in", "expires_in", tokens.ExpiresIn)

	// The signup access token is still live alongside the signin one.
	got, err := client.GetUserByToken(ctx, accessToken)
	if err != nil {
		logger.Error("get user by token", "err", err)
		os.Exit(1)
	}
	logger.Info("fetched user by token", "user_id", got.ID.String())

	if byID, err := client.GetUserByID(ctx, user.ID); err != nil {
		logger.Warn("get user by id", "err", err)
	} else if byID == nil {
		logger.Warn("users table query returned no row", "user_id", user.ID.String())
	} else {
		logger.Info("fetched user from users table", "user_id", byID.ID.String())
	}

	refreshed, err := client.RefreshToken(ctx, tokens.RefreshToken)
	if err != nil {
		logger.Error("refresh", "err", err)
		os.Exit(1)
	}
	logger.Info("refreshed session", "rotated", refreshed.RefreshToken != tokens.RefreshToken)

	if err := client.Logout(ctx, refreshed.AccessToken); err != nil {
		logger.Error("logout", "err", err)
		os.Exit(1)
	}
	logger.Info("logged out")

	if cfg.ServiceRoleKey == "" {
		logger.Info("no service role key; leaving the demo account in place")
		return
	}

	if err := client.SoftDeleteUser(ctx, user.ID); err != nil {
		logger.Error("soft delete", "err", err)
		os.Exit(1)
	}
	logger.Info("soft deleted user", "user_id", user.ID.String())

	if err := client.HardDeleteUser(ctx, user.ID); err != nil {
		logger.Error("hard delete", "err", err)
		os.Exit(1)
	}
	logger.Info("hard deleted user", "user_id", user.ID.String())
}
