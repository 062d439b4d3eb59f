package main

import (
	"fmt"
	"log"
	"os"

	"go-pos-backoffice/internal/model"
	"go-pos-backoffice/pkg/database"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "backofficectl",
	Short: "Admin CLI for the POS back office",
	Long: `backofficectl runs maintenance tasks against the back office database:
resetting user passwords and seeding demo data. It reads the same DATABASE_URL
and DB_* environment variables as the API server.`,
}

var (
	resetEmail    string
	resetPassword string
)

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Reset a user's password directly in the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		db := connect()

		var user model.User
		if err := db.Where("email = ?", resetEmail).First(&user).Error; err != nil {
			return fmt.Errorf("user %s not found: %w", resetEmail, err)
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(resetPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		if err := db.Model(&user).Update("password", string(hashed)).Error; err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}

		log.Printf("✅ Password for %s has been reset", resetEmail)
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed demo accounts and products for a fresh install",
	RunE: func(cmd *cobra.Command, args []string) error {
		db := connect()
		return seedDemoData(db)
	},
}

func connect() *gorm.DB {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}
	return database.ConnectDB()
}

func seedDemoData(db *gorm.DB) error {
	var count int64
	db.Model(&model.Account{}).Count(&count)
	if count > 0 {
		log.Println("Accounts already exist, skipping seed")
		return nil
	}

	accounts := []model.Account{
		{Name: "Kas Toko", Type: model.AccountCash, IsActive: true},
		{Name: "BCA", Type: model.AccountBank, Number: "1234567890", IsActive: true},
		{Name: "GoPay", Type: model.AccountEwallet, IsActive: true},
	}
	for i := range accounts {
		accounts[i].CreatedBy = "seed"
		accounts[i].UpdatedBy = "seed"
	}
	if err := db.Create(&accounts).Error; err != nil {
		return fmt.Errorf("failed to seed accounts: %w", err)
	}

	products := []model.Product{
		{SKU: "RAW-001", Name: "Tepung Terigu 1kg", Category: "Bahan Baku", Unit: "kg", ProductType: model.ProductRaw, BaseCost: 12000, StockQty: 50, MinStock: 10, IsActive: true},
		{SKU: "RAW-002", Name: "Gula Pasir 1kg", Category: "Bahan Baku", Unit: "kg", ProductType: model.ProductRaw, BaseCost: 15000, StockQty: 40, MinStock: 10, IsActive: true},
		{SKU: "INT-001", Name: "Roti Manis", Category: "Produk Jadi", Unit: "pcs", ProductType: model.ProductInternal, BaseCost: 3000, SellPrice: 8000, StockQty: 0, MinStock: 20, IsActive: true},
		{SKU: "SVC-001", Name: "Jasa Antar", Category: "Layanan", Unit: "trip", ProductType: model.ProductService, SellPrice: 10000, IsActive: true},
	}
	for i := range products {
		products[i].CreatedBy = "seed"
		products[i].UpdatedBy = "seed"
	}
	if err := db.Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	log.Printf("✅ Seeded %d accounts and %d products", len(accounts), len(products))
	return nil
}

func init() {
	resetPasswordCmd.Flags().StringVar(&resetEmail, "email", "admin@example.com", "Email of the user")
	resetPasswordCmd.Flags().StringVar(&resetPassword, "password", "admin123", "New password")

	rootCmd.AddCommand(resetPasswordCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
