package main

import (
	"context"
	"flag"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"textscan/internal/config"
	"textscan/internal/repository/postgres"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed accounts")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("BLOCKED: cannot run --drop-tables in production environment")
	}

	log.Printf("Setting up database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Drop tables if requested
	if *dropTables {
		log.Println("Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("Tables dropped")
	}

	// Run schema to ensure tables exist
	log.Println("Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("Schema ready")

	if *schemaOnly {
		log.Println("Schema setup complete (schema-only mode)")
		return
	}

	// Seed test accounts
	policy, err := config.LoadCreditPolicy()
	if err != nil {
		log.Fatalf("Failed to load credit policy: %v", err)
	}

	log.Println("Seeding test accounts...")
	if err := seedAccounts(ctx, pool, tables, policy.DefaultCredits); err != nil {
		log.Fatalf("Failed to seed accounts: %v", err)
	}

	log.Println("Seeding complete")
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	createAccounts := `
		CREATE TABLE IF NOT EXISTS ` + tables.Accounts + ` (
			id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			role TEXT NOT NULL DEFAULT 'user',
			credits INTEGER NOT NULL DEFAULT 20 CHECK (credits >= 0),
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createAccounts); err != nil {
		return err
	}

	createDocuments := `
		CREATE TABLE IF NOT EXISTS ` + tables.Documents + ` (
			id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			account_id BIGINT NOT NULL REFERENCES ` + tables.Accounts + `(id) ON DELETE CASCADE,
			filename VARCHAR(255) NOT NULL,
			locator TEXT NOT NULL,
			file_size BIGINT NOT NULL,
			content_hash CHAR(64) NOT NULL,
			processing_status TEXT NOT NULL DEFAULT 'pending',
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createDocuments); err != nil {
		return err
	}

	createRequests := `
		CREATE TABLE IF NOT EXISTS ` + tables.CreditRequests + ` (
			id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			account_id BIGINT NOT NULL REFERENCES ` + tables.Accounts + `(id) ON DELETE CASCADE,
			requested_credits INTEGER NOT NULL CHECK (requested_credits > 0),
			reason VARCHAR(500),
			status TEXT NOT NULL DEFAULT 'pending',
			admin_response VARCHAR(500),
			processed_by BIGINT REFERENCES ` + tables.Accounts + `(id),
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createRequests); err != nil {
		return err
	}

	// Create indexes
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `documents_account_status ON ` + tables.Documents + `(account_id, processing_status)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `credit_requests_status ON ` + tables.CreditRequests + `(status)`,
	}

	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables drops all tables in reverse order (to respect foreign keys)
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.CreditRequests,
		tables.Documents,
		tables.Accounts,
	}

	for _, table := range tableNames {
		dropSQL := "DROP TABLE IF EXISTS " + table + " CASCADE"
		if _, err := pool.Exec(ctx, dropSQL); err != nil {
			return err
		}
		log.Printf("  dropped %s", table)
	}

	return nil
}

// seedAccounts inserts a test admin and a test user, skipping existing rows.
func seedAccounts(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, defaultCredits int) error {
	query := `
		INSERT INTO ` + tables.Accounts + ` (username, role, credits)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO NOTHING
	`
	seeds := []struct {
		username string
		role     string
		credits  int
	}{
		{"admin", "admin", defaultCredits * 5},
		{"testuser", "user", defaultCredits},
	}

	for _, s := range seeds {
		if _, err := pool.Exec(ctx, query, s.username, s.role, s.credits); err != nil {
			return err
		}
		log.Printf("  seeded %s (%s)", s.username, s.role)
	}

	return nil
}
