// cmd/seeduser creates the first ADMIN account, or resets its password.
// Uso: go run ./cmd/seeduser -username admin -password secreto
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"mimbres/internal/config"
	"mimbres/internal/infra"
	"mimbres/internal/model"
	"mimbres/internal/repository"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	username := flag.String("username", "admin", "nombre de usuario")
	password := flag.String("password", "", "contraseña (obligatoria)")
	nombre := flag.String("nombre", "Administrador", "nombre")
	apellido := flag.String("apellido", "Mimbres", "apellido paterno")
	flag.Parse()

	if *password == "" {
		log.Fatal().Msg("-password es obligatorio")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := infra.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), 12)
	if err != nil {
		log.Fatal().Err(err).Msg("bcrypt error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	repo := repository.NewUsuarioRepository(db)

	existe, err := repo.ExistsUsername(ctx, *username)
	if err != nil {
		log.Fatal().Err(err).Msg("lookup failed")
	}
	if existe {
		u, err := repo.FindByUsername(ctx, *username)
		if err != nil {
			log.Fatal().Err(err).Msg("lookup failed")
		}
		if _, err := repo.Update(ctx, u.ID, map[string]any{
			"password_hash": string(hash),
			"rol":           model.RolAdmin,
		}); err != nil {
			log.Fatal().Err(err).Msg("update failed")
		}
		log.Info().Str("username", *username).Int64("id", u.ID).Msg("password reset")
		return
	}

	u := &model.Usuario{
		Nombre:          *nombre,
		ApellidoPaterno: *apellido,
		Username:        *username,
		PasswordHash:    string(hash),
		Rol:             model.RolAdmin,
	}
	if err := repo.Create(ctx, u); err != nil {
		log.Fatal().Err(err).Msg("insert failed")
	}
	log.Info().Str("username", *username).Int64("id", u.ID).Msg("admin user created")
}
