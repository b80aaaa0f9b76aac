package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/cn-address-parser/app/config"
	"github.com/cn-address-parser/app/controllers"
	"github.com/cn-address-parser/app/services"
	"github.com/cn-address-parser/internal/parser"
	"github.com/cn-address-parser/internal/refdata"
	"github.com/cn-address-parser/routes"
)

func main() {
	// 1. Load .env (nếu có) rồi app config
	_ = godotenv.Load()
	loadConfig()

	// 2. Khởi tạo logger
	logger := initLogger()
	defer logger.Sync()

	logger.Info("Starting CN Address Parser Service")

	// 3. Parser config (scoring weights, batch/cache limits)
	parserCfgPath := viper.GetString("parser.config_file")
	if err := config.Load(parserCfgPath); err != nil {
		logger.Warn("không đọc được parser config, dùng defaults",
			zap.String("path", parserCfgPath), zap.Error(err))
	}

	// 4. Bảng tham chiếu hành chính — không có thì service không chạy được
	table, err := refdata.Load()
	if err != nil {
		logger.Fatal("Failed to load division reference data", zap.Error(err))
	}

	// 5. Engine
	addressParser := parser.NewAddressParser(table, logger)

	// 6. Cache: LRU trong tiến trình, thêm Redis L2 nếu được cấu hình
	cacheService := initCache(logger)
	defer cacheService.Close()

	// 7. Services và controllers
	parseService := services.NewParseService(addressParser, cacheService, logger)
	parseController := controllers.NewParseController(parseService, logger)

	// 8. Router
	if viper.GetString("app.env") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	routes.SetupAllRoutes(router, parseController, routes.AuthConfigFromEnv(), logger)

	// 9. Khởi động server
	port := viper.GetString("app.port")
	logger.Info("CN Address Parser Service listening", zap.String("port", port))
	if err := router.Run(":" + port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// loadConfig đọc config/app.yaml và env vars (env thắng file).
func loadConfig() {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")

	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("redis.url", "")
	viper.SetDefault("parser.config_file", "config/parser.yaml")

	viper.AutomaticEnv()
	_ = viper.BindEnv("app.port", "APP_PORT")
	_ = viper.BindEnv("app.env", "APP_ENV")
	_ = viper.BindEnv("redis.url", "REDIS_URL")

	// Thiếu file config không phải lỗi: defaults + env là đủ.
	_ = viper.ReadInConfig()
}

func initLogger() *zap.Logger {
	var logger *zap.Logger
	var err error
	if viper.GetString("app.env") == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	return logger
}

// initCache dựng tầng cache. Redis hỏng chỉ làm mất L2, không chặn service.
func initCache(logger *zap.Logger) services.ICacheService {
	lruCache, err := services.NewLRUCacheService(config.C.Cache.LRUSize, logger)
	if err != nil {
		logger.Fatal("Failed to initialize LRU cache", zap.Error(err))
	}

	redisURL := viper.GetString("redis.url")
	if redisURL == "" {
		logger.Info("REDIS_URL không được cấu hình, chỉ dùng cache trong tiến trình")
		return lruCache
	}

	ttl := 24 * time.Hour
	if parsed, err := time.ParseDuration(config.C.Cache.RedisTTL); err == nil {
		ttl = parsed
	}
	redisCache, err := services.NewRedisCacheService(redisURL, ttl, logger)
	if err != nil {
		logger.Warn("không kết nối được Redis, chỉ dùng cache trong tiến trình", zap.Error(err))
		return lruCache
	}
	return services.NewHybridCacheService(lruCache, redisCache, logger)
}
