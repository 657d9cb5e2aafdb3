package config

import (
	"context"
	"fmt"
	"slices"
	"time"

	"hotelpms/middleware"
	"hotelpms/services/logger"
	"hotelpms/store"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

// App các thành phần hạ tầng dùng chung; Redis và Cloudinary có thể nil
type App struct {
	Router     *gin.Engine
	Melody     *melody.Melody
	Cron       *cron.Cron
	Store      store.Store
	Redis      *redis.Client
	Cloudinary *cloudinary.Cloudinary
}

func InitApp(cfg *Config, log logger.Logger) (*App, error) {
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization", "X-Request-ID")
	configCors.AllowCredentials = true
	configCors.AllowAllOrigins = false
	configCors.AllowOriginFunc = func(origin string) bool {
		return len(cfg.CORSOrigins) == 0 || slices.Contains(cfg.CORSOrigins, origin)
	}
	router.Use(cors.New(configCors))
	router.Use(middleware.RequestIDMiddleware())

	router.SetTrustedProxies(nil)

	app := &App{
		Router: router,
		Melody: melody.New(),
		Cron:   cron.New(cron.WithLocation(cfg.Location)),
	}
	if err := app.initComponents(cfg, log); err != nil {
		return nil, fmt.Errorf("failed to initialize components: %v", err)
	}
	return app, nil
}

func (a *App) initComponents(cfg *Config, log logger.Logger) error {
	var err error
	if a.Store, err = ConnectStore(cfg, log); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.Redis, err = ConnectRedis(ctx, cfg)
	switch {
	case err != nil:
		log.Warn("Redis unavailable, cache disabled: %v", err)
	case a.Redis == nil:
		log.Warn("REDIS_ADDR not set, cache disabled")
	default:
		log.Info("Kết nối Redis thành công")
	}

	a.Cloudinary, err = ConnectCloudinary(cfg)
	switch {
	case err != nil:
		log.Warn("Cloudinary disabled: %v", err)
	case a.Cloudinary == nil:
		log.Warn("CLOUDINARY_URL not set, attachment upload disabled")
	}

	log.Info("All components initialized successfully")
	return nil
}

// InitWebSocket gắn endpoint /ws cho bảng realtime của lễ tân
func InitWebSocket(router *gin.Engine, m *melody.Melody, log logger.Logger) {
	router.GET("/ws", func(c *gin.Context) {
		if err := m.HandleRequest(c.Writer, c.Request); err != nil {
			log.Error("websocket upgrade failed: %v", err)
		}
	})

	m.HandleConnect(func(s *melody.Session) {
		log.Debug("websocket client connected: %s", s.Request.RemoteAddr)
	})
	m.HandleDisconnect(func(s *melody.Session) {
		log.Debug("websocket client disconnected: %s", s.Request.RemoteAddr)
	})
}
