package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestDecodeAppliesDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	cfg, err := decode(v)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if cfg.Catalog.DefaultPageSize != 20 {
		t.Fatalf("want default page size 20 got %d", cfg.Catalog.DefaultPageSize)
	}
	if cfg.Catalog.MaxPageSize != 100 {
		t.Fatalf("want max page size 100 got %d", cfg.Catalog.MaxPageSize)
	}
	if cfg.Migration.BatchSize != 1000 {
		t.Fatalf("want batch size 1000 got %d", cfg.Migration.BatchSize)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("want sqlite driver got %s", cfg.Database.Driver)
	}
	if !cfg.Server.IsDebug() {
		t.Fatalf("default server mode should be debug")
	}
}

func TestDecodeNormalizesInvalidValues(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("catalog.default_page_size", 50)
	v.Set("catalog.max_page_size", 10)
	v.Set("catalog.taxonomy_page_size", 500)
	v.Set("migration.batch_size", -1)
	v.Set("database.driver", " Mongo ")

	cfg, err := decode(v)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if cfg.Catalog.MaxPageSize != 50 {
		t.Fatalf("max page size should be raised to default, got %d", cfg.Catalog.MaxPageSize)
	}
	if cfg.Catalog.TaxonomyPageSize != 50 {
		t.Fatalf("taxonomy page size should be capped, got %d", cfg.Catalog.TaxonomyPageSize)
	}
	if cfg.Migration.BatchSize != 1000 {
		t.Fatalf("want fallback batch size got %d", cfg.Migration.BatchSize)
	}
	if !cfg.Database.UsesMongo() {
		t.Fatalf("driver should resolve to mongo, got %q", cfg.Database.Driver)
	}
}
