package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"hotspot-admin/internal/config"
	pg "hotspot-admin/internal/infra/db/postgres"
	"hotspot-admin/internal/usecase"
)

func main() {
	// ---- Config ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	adminUser := flag.String("admin-user", "admin", "initial admin username")
	adminPass := flag.String("admin-pass", "", "initial admin password (required when no admin exists)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, false)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Connect Postgres
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 4)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	authUC := usecase.NewAuthUseCase(pg.NewAdminRepo(pool))
	pkgUC := usecase.NewPackageUseCase(pg.NewPackageRepo(pool), pg.NewSubscriberRepo(pool))

	// Bootstrap the first operator account
	n, err := authUC.CountAdmins(ctx)
	if err != nil {
		log.Fatalf("count admins: %v", err)
	}
	if n > 0 {
		fmt.Printf("%d admin account(s) already present. No changes.\n", n)
	} else {
		if *adminPass == "" {
			log.Fatalf("no admin account exists; pass -admin-pass to create %q", *adminUser)
		}
		admin, err := authUC.CreateAdmin(ctx, *adminUser, *adminPass)
		if err != nil {
			log.Fatalf("create admin: %v", err)
		}
		fmt.Printf("seeded admin: %s (id=%s)\n", admin.Username, admin.ID)
	}

	// If packages already exist, do nothing
	pkgs, err := pkgUC.List(ctx)
	if err != nil {
		log.Fatalf("list packages: %v", err)
	}
	if len(pkgs) > 0 {
		fmt.Printf("%d packages already present. No changes.\n", len(pkgs))
		for _, p := range pkgs {
			fmt.Printf("  - %s (days=%d, price=%.2f)\n", p.Name, p.DurationDays, p.Price)
		}
		return
	}

	// Seed a few sample packages
	seed := []struct {
		Name  string
		Price float64
		Days  int
		Speed string
		Quota string
	}{
		{"Daily", 0.5, 1, "5 Mbps", "2 GB"},
		{"Weekly", 2.5, 7, "10 Mbps", "20 GB"},
		{"Monthly", 8.0, 30, "20 Mbps", ""},
	}

	for _, s := range seed {
		p, err := pkgUC.Create(ctx, s.Name, s.Price, s.Days, s.Speed, s.Quota)
		if err != nil {
			log.Fatalf("create package %q: %v", s.Name, err)
		}
		fmt.Printf("seeded: %s (id=%s, days=%d, price=%.2f)\n", p.Name, p.ID, p.DurationDays, p.Price)
	}

	fmt.Println("Seeding complete.")
}
