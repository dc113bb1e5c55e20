package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gocql/gocql"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"pceshop_back_end/internal/config"
	"pceshop_back_end/internal/models"
)

// Models lists every table managed by AutoMigrate, parents first.
var Models = []interface{}{
	&models.User{},
	&models.Group{},
	&models.UserProfile{},
	&models.Category{},
	&models.Product{},
	&models.Order{},
	&models.OrderItem{},
	&models.Cart{},
	&models.CartItem{},
	&models.SavedCard{},
}

// =============================================
// POSTGRES
// =============================================

// ConnectPostgres opens the relational store and migrates the schema.
func ConnectPostgres(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("postgres connection failed: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("✅ Connected to PostgreSQL")
	return db, nil
}

// Migrate creates or updates every table and seeds the Employee group.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("auto-migrate failed: %w", err)
	}
	group := models.Group{Name: models.EmployeeGroup}
	if err := db.Where("name = ?", group.Name).FirstOrCreate(&group).Error; err != nil {
		return fmt.Errorf("seeding %s group failed: %w", models.EmployeeGroup, err)
	}
	return nil
}

// =============================================
// REDIS
// =============================================

// ConnectRedis returns nil when no host is configured.
func ConnectRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if cfg.RedisHost == "" {
		log.Println("⚠️ REDIS_HOST not set, cache and login rate limiting disabled")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisHost,
		Password:     cfg.RedisPassword,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	log.Println("✅ Connected to Redis")
	return client, nil
}

// =============================================
// MINIO
// =============================================

// ConnectMinIO returns nil when no endpoint is configured. The bucket is
// created on first start.
func ConnectMinIO(ctx context.Context, cfg *config.Config) (*minio.Client, error) {
	if cfg.MinIO.Endpoint == "" {
		log.Println("⚠️ MINIO_ENDPOINT not set, product image upload disabled")
		return nil, nil
	}

	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client failed: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.MinIO.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check failed: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinIO.Bucket, minio.MakeBucketOptions{Region: cfg.MinIO.Region}); err != nil {
			return nil, fmt.Errorf("minio bucket creation failed: %w", err)
		}
		log.Println("🪣 Bucket created:", cfg.MinIO.Bucket)
	}

	log.Println("✅ Connected to MinIO:", cfg.MinIO.Endpoint)
	return client, nil
}

// =============================================
// SCYLLA DB
// =============================================

// ConnectScylla opens the ledger keyspace session, or returns nil when no
// hosts are configured.
func ConnectScylla(cfg *config.Config) (*gocql.Session, error) {
	if len(cfg.Scylla.Hosts) == 0 {
		log.Println("⚠️ SCYLLA_HOSTS not set, stock ledger and audit log disabled")
		return nil, nil
	}

	cluster := gocql.NewCluster(cfg.Scylla.Hosts...)
	cluster.Keyspace = cfg.Scylla.Keyspace
	cluster.Consistency = gocql.Quorum
	cluster.Timeout = 5 * time.Second
	cluster.NumConns = 4
	cluster.ReconnectInterval = 1 * time.Second
	if cfg.Scylla.Username != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: cfg.Scylla.Username,
			Password: cfg.Scylla.Password,
		}
	}
	cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(gocql.RoundRobinHostPolicy())

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("scylla session for %s failed: %w", cfg.Scylla.Keyspace, err)
	}

	log.Printf("✅ ScyllaDB session for keyspace '%s'", cfg.Scylla.Keyspace)
	return session, nil
}
