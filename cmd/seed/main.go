// Package main provides a CLI tool for seeding a tenant database with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	corefolio "logiprofit/internal/core/folio"
	"logiprofit/internal/core/id"
	"logiprofit/internal/core/tenant"
	"logiprofit/internal/infrastructure/folio"
	"logiprofit/internal/infrastructure/storage/postgres"
	"logiprofit/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Connect to the tenant database being seeded
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := seedTenantRegistry(ctx, dbURL, log); err != nil {
		log.Warnw("failed to seed tenant registry", "error", err)
	}

	if err := seedAdminUser(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	// Seed demo data if requested
	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@logiprofit.mx"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	// Check if admin already exists
	var existingID id.ID
	err := pool.QueryRow(ctx,
		`SELECT id FROM users WHERE email = $1`,
		adminEmail,
	).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail, "user_id", existingID)
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check admin exists: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	userID := id.New()
	now := time.Now()

	_, err = pool.Exec(ctx, `
		INSERT INTO users (
			id, email, password_hash, full_name, is_active, is_admin, roles,
			created_at, updated_at, version
		)
		VALUES ($1, $2, $3, 'System Admin', true, true, $4, $5, $5, 1)
	`, userID, adminEmail, string(passwordHash), []string{"admin"}, now)
	if err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}

	log.Infow("admin user created",
		"email", adminEmail,
		"user_id", userID,
	)

	return nil
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	log.Info("seeding demo data...")

	// 1. Seed Vehicles
	vehicles := []struct {
		name      string
		plate     string
		vType     string
		brand     string
		model     string
		year      int
		loadedKmL string
		emptyKmL  string
	}{
		{"Tractocamión Kenworth 01", "ABC-123-A", "tractor", "Kenworth", "T680", 2021, "2.2", "2.8"},
		{"Tractocamión Freightliner 02", "DEF-456-B", "tractor", "Freightliner", "Cascadia", 2019, "2.0", "2.6"},
		{"Torton International 03", "GHI-789-C", "torton", "International", "HV607", 2020, "3.1", "3.8"},
		{"Rabón Hino 04", "JKL-012-D", "rabon", "Hino", "Serie 500", 2022, "4.5", "5.4"},
		{"Camioneta NP300 05", "MNO-345-E", "pickup", "Nissan", "NP300", 2023, "9.0", "11.0"},
	}

	vehicleCfg := corefolio.DefaultConfig("VEH")
	for i, v := range vehicles {
		vid := id.New()
		code := vehicleCfg.Format(int64(i + 1))
		_, err := pool.Exec(ctx, `
			INSERT INTO cat_vehicles (
				id, code, name, plate, type, brand, model, year,
				efficiency_loaded_km_l, efficiency_empty_km_l,
				version, deletion_mark, created_at, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 1, false, now(), now())
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, vid, code, v.name, v.plate, v.vType, v.brand, v.model, v.year, v.loadedKmL, v.emptyKmL)
		if err != nil {
			log.Warnw("failed to seed vehicle", "name", v.name, "error", err)
		}
	}

	// 2. Seed Drivers
	drivers := []struct {
		name    string
		license string
		phone   string
		payType string
		rate    string
	}{
		{"Juan Pérez Hernández", "LIC-MX-100001", "+52 81 1111 0001", "PER_DAY", "850.00"},
		{"Miguel Ángel Torres", "LIC-MX-100002", "+52 81 1111 0002", "PER_KM", "2.50"},
		{"Roberto Sánchez López", "LIC-MX-100003", "+52 81 1111 0003", "PER_TRIP", "3500.00"},
		{"Carlos Ramírez Díaz", "LIC-MX-100004", "+52 81 1111 0004", "BIWEEKLY", "9000.00"},
	}

	driverCfg := corefolio.DefaultConfig("DRV")
	for i, d := range drivers {
		did := id.New()
		code := driverCfg.Format(int64(i + 1))
		_, err := pool.Exec(ctx, `
			INSERT INTO cat_drivers (
				id, code, name, license_number, phone, pay_type, rate,
				version, deletion_mark, created_at, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, 1, false, now(), now())
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, did, code, d.name, d.license, d.phone, d.payType, d.rate)
		if err != nil {
			log.Warnw("failed to seed driver", "name", d.name, "error", err)
		}
	}

	// 3. Seed Clients
	clients := []struct {
		name       string
		legalName  string
		rfc        string
		address    string
		creditDays int
	}{
		{"Cemex Monterrey", "CEMEX S.A.B. de C.V.", "CMX870530AB1", "Av. Constitución 444, Monterrey, NL", 30},
		{"Grupo Alfa", "ALFA S.A.B. de C.V.", "ALF740101XY2", "Av. Gómez Morín 1111, San Pedro, NL", 45},
		{"Abarrotes del Norte", "Abarrotes del Norte S.A. de C.V.", "ADN990215CD3", "Blvd. Díaz Ordaz 200, Santa Catarina, NL", 15},
		{"Transportes Ocasionales", "", "", "", 0},
	}

	clientCfg := corefolio.DefaultConfig("CLI")
	for i, c := range clients {
		cid := id.New()
		code := clientCfg.Format(int64(i + 1))

		var legalName, rfc, address any
		if c.legalName != "" {
			legalName = c.legalName
		}
		if c.rfc != "" {
			rfc = c.rfc
		}
		if c.address != "" {
			address = c.address
		}

		_, err := pool.Exec(ctx, `
			INSERT INTO cat_clients (
				id, code, name, legal_name, rfc, address, credit_days,
				version, deletion_mark, created_at, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, 1, false, now(), now())
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, cid, code, c.name, legalName, rfc, address, c.creditDays)
		if err != nil {
			log.Warnw("failed to seed client", "name", c.name, "error", err)
		}
	}

	// Advance the code sequences past whatever codes exist, so catalog
	// creations through the API continue the numbering instead of colliding.
	folios := folio.New(pool)
	for table, cfg := range map[string]corefolio.Config{
		"cat_vehicles": vehicleCfg,
		"cat_drivers":  driverCfg,
		"cat_clients":  clientCfg,
	} {
		var maxCode string
		err := pool.QueryRow(ctx,
			`SELECT COALESCE(MAX(code), '') FROM `+table+` WHERE code LIKE $1`,
			cfg.Prefix+"-%",
		).Scan(&maxCode)
		if err != nil {
			log.Warnw("failed to read max code", "table", table, "error", err)
			continue
		}

		last := corefolio.ParseNumber(maxCode)
		if last < 0 {
			continue
		}
		if err := folios.SetNextValue(ctx, cfg, last+1); err != nil {
			log.Warnw("failed to advance code sequence", "prefix", cfg.Prefix, "error", err)
		}
	}

	log.Info("demo data seeded successfully")
	return nil
}

func seedTenantRegistry(ctx context.Context, dbURL string, log *logger.Logger) error {
	metaDSN := os.Getenv("META_DATABASE_URL")
	if metaDSN == "" {
		log.Warn("META_DATABASE_URL is not set; skipping tenant registry seed")
		return nil
	}

	metaPool, err := pgxpool.New(ctx, metaDSN)
	if err != nil {
		return fmt.Errorf("connect meta database: %w", err)
	}
	defer metaPool.Close()

	if err := metaPool.Ping(ctx); err != nil {
		return fmt.Errorf("ping meta database: %w", err)
	}

	tenantSlug := os.Getenv("TENANT_SLUG")
	if tenantSlug == "" {
		tenantSlug = "demo"
	}

	tenantName := os.Getenv("TENANT_NAME")
	if tenantName == "" {
		tenantName = "Demo Freight Co"
	}

	dbConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return fmt.Errorf("parse tenant database url: %w", err)
	}

	dbHost := dbConfig.ConnConfig.Host
	if dbHost == "" {
		dbHost = "localhost"
	}

	dbPort := int(dbConfig.ConnConfig.Port)
	if dbPort == 0 {
		dbPort = 5432
	}

	dbName := dbConfig.ConnConfig.Database
	if dbName == "" {
		dbName = "lp_" + tenantSlug
	}

	var existingID string
	err = metaPool.QueryRow(ctx, `SELECT id FROM tenants WHERE slug = $1`, tenantSlug).Scan(&existingID)
	if err == nil {
		log.Infow("tenant already exists in registry", "slug", tenantSlug, "tenant_id", existingID)
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check tenant exists: %w", err)
	}

	registry := tenant.NewPostgresRegistry(metaPool)
	newTenant := &tenant.Tenant{
		Slug:        tenantSlug,
		DisplayName: tenantName,
		DBName:      dbName,
		DBHost:      dbHost,
		DBPort:      dbPort,
		Status:      tenant.StatusActive,
	}

	if err := registry.Create(ctx, newTenant); err != nil {
		return fmt.Errorf("create tenant: %w", err)
	}

	log.Infow("tenant seeded in registry", "slug", tenantSlug, "tenant_id", newTenant.ID)
	return nil
}
