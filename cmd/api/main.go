package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"

	"smartshelf/internal/config"
	"smartshelf/internal/domain/model"
	"smartshelf/internal/handler"
	"smartshelf/internal/infra/db"
	infraRepo "smartshelf/internal/infra/repository"
	"smartshelf/internal/server"
	"smartshelf/internal/usecase"
	"smartshelf/internal/validator"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	//.envが無ければ環境変数をそのまま使う
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Product{},
		&model.Sale{},
		&model.InventoryAdjustment{},
		&model.PurchaseOrder{},
	); err != nil {
		log.Fatal(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	poRepo := infraRepo.NewPurchaseOrderGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	clock := &realClock{}

	//refresh TTL（cookie側。usecaseのDB保存期限と揃える）
	refreshTTL := 30 * 24 * time.Hour

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo, rtRepo, validator.NewAuthValidator())
	userUC := usecase.NewUserUsecase(userRepo, rtRepo)
	productUC := usecase.NewProductUsecase(productRepo, inventoryRepo)
	salesUC := usecase.NewSalesUsecase(txManager, clock)
	forecastUC := usecase.NewForecastUsecase(txManager, clock)
	poUC := usecase.NewPurchaseOrderUsecase(txManager, productRepo, poRepo, clock)

	//Handler生成
	authH := handler.NewAuthHandler(authUC, refreshTTL)
	userH := handler.NewUserHandler(userUC)
	productH := handler.NewProductHandler(productUC)
	salesH := handler.NewSalesHandler(salesUC)
	forecastH := handler.NewForecastHandler(forecastUC)
	poH := handler.NewPurchaseOrderHandler(poUC)

	//Server組み立て
	e := server.New(cfg)
	authH.RegisterRoutes(e, cfg, userRepo)
	userH.RegisterRoutes(e, cfg, userRepo)
	productH.RegisterRoutes(e, cfg, userRepo)
	salesH.RegisterRoutes(e, cfg, userRepo)
	forecastH.RegisterRoutes(e, cfg, userRepo)
	poH.RegisterRoutes(e, cfg, userRepo)

	if err := server.Start(e, ":"+cfg.Port); err != nil {
		log.Fatal(err)
	}
}
