package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"Gin_redis_device_tracker/kvstore"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Aliases so handlers read shorter.
type Ctx = gin.Context
type H = gin.H

// App aggregates the shared dependencies.
type App struct {
	Router *gin.Engine
	KV     kvstore.KV
	Config Config
}

// Config is read from environment variables.
type Config struct {
	KVBackend string // memory | file | redis | postgres
	FilePath  string
	RedisAddr string
	RedisPwd  string
	WebOrigin string
}

func MustNew() *App {
	cfg := loadConfig()

	kv, err := openKV(cfg)
	if err != nil {
		log.Fatalf("kv backend %s: %v", cfg.KVBackend, err)
	}
	log.Printf("using %s persistence", cfg.KVBackend)

	r := gin.Default()
	useCORS(r, cfg.WebOrigin)
	return &App{Router: r, KV: kv, Config: cfg}
}

func (a *App) Close() { _ = a.KV.Close() }

func openKV(cfg Config) (kvstore.KV, error) {
	switch cfg.KVBackend {
	case "memory":
		return kvstore.NewMemory(), nil
	case "file":
		return kvstore.NewFile(cfg.FilePath)
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, err
		}
		return kvstore.NewRedis(rdb), nil
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			os.Getenv("DB_PORT"),
		)
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		return kvstore.NewGorm(db)
	}
	return nil, fmt.Errorf("unknown KV_BACKEND %q", cfg.KVBackend)
}

func loadConfig() Config {
	get := func(k, def string) string {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		return v
	}
	return Config{
		KVBackend: get("KV_BACKEND", "file"),
		FilePath:  get("KV_FILE", "devicetracker.json"),
		RedisAddr: get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPwd:  os.Getenv("REDIS_PASSWORD"),
		WebOrigin: get("WEB_ORIGIN", "http://localhost:5173"),
	}
}
