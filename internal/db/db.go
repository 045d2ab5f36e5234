package db

import (
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/VitalSpaAR/spa-agenda/internal/config"
	"github.com/VitalSpaAR/spa-agenda/internal/models"
)

func NewDB(cfg *config.Config, log zerolog.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Tratamiento{},
		&models.Subtratamiento{},
		&models.Cliente{},
		&models.Cita{},
		&models.CitaCliente{},
		&models.Disponibilidad{},
		&models.AuditLog{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	// Respaldo a nivel storage del chequeo de solapamiento: dos citas
	// no canceladas nunca pueden compartir box y rango horario, aunque
	// dos requests pasen el chequeo de lectura al mismo tiempo.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
        DO $$ BEGIN
            IF NOT EXISTS (
                SELECT 1 FROM pg_constraint WHERE conname = 'citas_box_sin_solapamiento'
            ) THEN
                ALTER TABLE citas ADD CONSTRAINT citas_box_sin_solapamiento
                    EXCLUDE USING gist (
                        box WITH =,
                        tstzrange(hora_inicio, hora_fin) WITH &&
                    )
                    WHERE (estado <> 'cancelado');
            END IF;
        END $$;
    `)

	return db
}
