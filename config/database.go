package config

import (
	"context"
	"fmt"

	"hotelpms/services/logger"
	"hotelpms/store"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectStore mở store theo STORE_DRIVER; postgres được AutoMigrate ngay khi kết nối
func ConnectStore(cfg *Config, log logger.Logger) (store.Store, error) {
	if cfg.StoreDriver == StoreDriverMemory {
		log.Warn("STORE_DRIVER=memory, data will not survive a restart")
		return store.NewMemoryStore(), nil
	}

	gormCfg := &gorm.Config{}
	if cfg.Env == "prod" {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Warn)
	}
	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("fail to connect to db: %w", err)
	}

	st := store.NewGormStore(db, cfg.TxMaxRetries)
	if err := st.AutoMigrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate tables: %w", err)
	}
	log.Info("Successfully connected to db")
	return st, nil
}

// ConnectRedis trả về nil khi REDIS_ADDR trống
func ConnectRedis(ctx context.Context, cfg *Config) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Username: cfg.RedisUser,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// ConnectCloudinary trả về nil khi CLOUDINARY_URL trống
func ConnectCloudinary(cfg *Config) (*cloudinary.Cloudinary, error) {
	if cfg.CloudinaryURL == "" {
		return nil, nil
	}
	cld, err := cloudinary.NewFromURL(cfg.CloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("lỗi khi khởi tạo Cloudinary: %w", err)
	}
	return cld, nil
}
