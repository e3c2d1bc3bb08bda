package main

import (
	"context"
	"log"
	"math/rand"

	"go.uber.org/zap"

	"github.com/cryptobloom/backend/internal/auth"
	"github.com/cryptobloom/backend/internal/config"
	"github.com/cryptobloom/backend/internal/domain"
	"github.com/cryptobloom/backend/internal/observability"
	"github.com/cryptobloom/backend/internal/persistence"
	"github.com/cryptobloom/backend/internal/repository"
)

var seedFlowers = []domain.Flower{
	{Name: "Red Roses Bouquet", Description: "Classic red roses perfect for expressing love and passion. Hand-picked and arranged by our expert florists.", Price: 49.99, Category: domain.CategoryRoses, Image: "🌹", Stock: 25, Rating: 4.8, IsActive: true},
	{Name: "Spring Tulips Mix", Description: "Colorful tulips that bring the freshness of spring to any occasion. Available in multiple colors.", Price: 34.99, Category: domain.CategoryTulips, Image: "🌷", Stock: 30, Rating: 4.6, IsActive: true},
	{Name: "Elegant White Orchids", Description: "Sophisticated white orchids that symbolize luxury and strength. Perfect for special occasions.", Price: 79.99, Category: domain.CategoryOrchids, Image: "🌺", Stock: 15, Rating: 4.9, IsActive: true},
	{Name: "Bright Sunflowers", Description: "Cheerful sunflowers that bring sunshine and happiness to any room. Symbol of loyalty and adoration.", Price: 39.99, Category: domain.CategorySunflowers, Image: "🌻", Stock: 20, Rating: 4.7, IsActive: true},
	{Name: "Pink Lilies Arrangement", Description: "Delicate pink lilies arranged beautifully. Perfect for expressing admiration and gratitude.", Price: 54.99, Category: domain.CategoryLilies, Image: "🌸", Stock: 18, Rating: 4.5, IsActive: true},
	{Name: "Mixed Seasonal Bouquet", Description: "A beautiful mix of seasonal flowers carefully selected and arranged by our florists.", Price: 44.99, Category: domain.CategoryMixed, Image: "💐", Stock: 22, Rating: 4.6, IsActive: true},
	{Name: "Exotic Bird of Paradise", Description: "Stunning exotic flowers that make a bold statement. Perfect for modern and contemporary settings.", Price: 89.99, Category: domain.CategoryExotic, Image: "🌺", Stock: 10, Rating: 4.8, IsActive: true},
	{Name: "Purple Lavender Bundle", Description: "Fragrant lavender bundles that provide relaxation and tranquility. Great for aromatherapy.", Price: 29.99, Category: domain.CategoryMixed, Image: "🌾", Stock: 35, Rating: 4.4, IsActive: true},
}

type seedUser struct {
	Username string
	Email    string
	Password string
	Role     domain.UserRole
}

var seedUsers = []seedUser{
	{Username: "admin", Email: "admin@cryptobloom.com", Password: "admin123", Role: domain.RoleAdmin},
	{Username: "moderator", Email: "moderator@cryptobloom.com", Password: "moderator123", Role: domain.RoleModerator},
	{Username: "alice", Email: "alice@example.com", Password: "alice123", Role: domain.RoleUser},
	{Username: "bob", Email: "bob@example.com", Password: "bob123", Role: domain.RoleUser},
}

var seedCurrencies = []string{"BTC", "ETH", "SOL", "ADA", "DOGE"}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	flowerRepo := repository.NewFlowerRepository(pool)
	tradeRepo := repository.NewTradeRepository(pool)

	for i := range seedFlowers {
		flower := seedFlowers[i]
		if err := flowerRepo.Create(ctx, &flower); err != nil {
			logger.Warn("seed flower failed", zap.String("name", flower.Name), zap.Error(err))
			continue
		}
		logger.Info("seeded flower", zap.String("name", flower.Name))
	}

	var userIDs []string
	for _, su := range seedUsers {
		hash, err := auth.HashPassword(su.Password, cfg.Auth.BcryptCost)
		if err != nil {
			logger.Fatal("hash password", zap.Error(err))
		}
		user := &domain.User{
			Username:      su.Username,
			Email:         su.Email,
			PasswordHash:  hash,
			Role:          su.Role,
			Wallet:        domain.DefaultWalletBalance,
			IsActive:      true,
			EmailVerified: true,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			logger.Warn("seed user failed", zap.String("username", su.Username), zap.Error(err))
			continue
		}
		logger.Info("seeded user", zap.String("username", user.Username), zap.String("role", string(user.Role)))
		if su.Role == domain.RoleUser {
			userIDs = append(userIDs, user.ID)
		}
	}

	// Placeholder trade history for the demo accounts. Most trades are
	// settled; the occasional pending one leaves something to cancel.
	for _, userID := range userIDs {
		for i := 0; i < 10; i++ {
			tradeType := domain.TradeTypeBuy
			if rand.Intn(2) == 1 {
				tradeType = domain.TradeTypeSell
			}
			status := domain.TradeStatusCompleted
			if rand.Intn(5) == 0 {
				status = domain.TradeStatusPending
			}
			trade := &domain.Trade{
				UserID:   userID,
				Type:     tradeType,
				Currency: seedCurrencies[rand.Intn(len(seedCurrencies))],
				Amount:   rand.Float64() * 2,
				Price:    rand.Float64() * 1000,
				Status:   status,
			}
			if err := tradeRepo.Create(ctx, trade); err != nil {
				logger.Warn("seed trade failed", zap.Error(err))
			}
		}
	}

	logger.Info("seeding complete")
}
