package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Lixing-Zhang/coffee-shop/internal/auth"
	"github.com/Lixing-Zhang/coffee-shop/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const defaultSeedPassword = "password"

// Seed inserts demo users, suppliers and the coffee menu. Rows that already
// exist (by email or name) are left alone, so it is safe to run on every start.
func Seed(ctx context.Context, db *gorm.DB, log *slog.Logger) error {
	db = db.WithContext(ctx)

	if err := seedUsers(db, log); err != nil {
		return err
	}
	if err := seedSuppliers(db, log); err != nil {
		return err
	}
	return seedProducts(db, log)
}

func seedUsers(db *gorm.DB, log *slog.Logger) error {
	hashed, err := auth.HashPassword(defaultSeedPassword)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	users := []models.User{
		{Name: "John Owner", Email: "owner@coffeeshop.com", Role: models.RoleOwner},
		{Name: "Sarah Manager", Email: "manager@coffeeshop.com", Role: models.RoleCafeManager},
		{Name: "Mike Cashier", Email: "cashier@coffeeshop.com", Role: models.RoleCashier},
	}

	for _, u := range users {
		var existing models.User
		err := db.Where("email = ?", u.Email).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			u.Password = hashed
			if err := db.Create(&u).Error; err != nil {
				return fmt.Errorf("create seed user %s: %w", u.Email, err)
			}
			log.Info("initialized default user", "email", u.Email, "role", u.Role)
		case err != nil:
			return fmt.Errorf("query seed user %s: %w", u.Email, err)
		}
	}
	return nil
}

func seedSuppliers(db *gorm.DB, log *slog.Logger) error {
	suppliers := []models.Supplier{
		{Name: "Premium Coffee Beans Co.", ContactPerson: "Alice Johnson", Phone: "555-0123", Email: "orders@premiumcoffee.com", Address: "123 Coffee Street, Bean City, BC 12345"},
		{Name: "Fresh Dairy Supplies", ContactPerson: "Bob Wilson", Phone: "555-0456", Email: "sales@freshdairy.com", Address: "456 Milk Avenue, Dairy Town, DT 67890"},
		{Name: "Sweet Treats Bakery", ContactPerson: "Carol Smith", Phone: "555-0789", Email: "wholesale@sweettreats.com", Address: "789 Pastry Lane, Bakery City, BK 54321"},
	}

	for _, s := range suppliers {
		var count int64
		if err := db.Model(&models.Supplier{}).Where("name = ?", s.Name).Count(&count).Error; err != nil {
			return fmt.Errorf("query seed supplier %s: %w", s.Name, err)
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&s).Error; err != nil {
			return fmt.Errorf("create seed supplier %s: %w", s.Name, err)
		}
		log.Info("initialized default supplier", "name", s.Name)
	}
	return nil
}

type seedProduct struct {
	name, description, category, unit string
	price                             string
	stock                             int
}

var menu = []seedProduct{
	{"Espresso", "Rich, strong coffee shot", "Coffee", "cup", "2.50", 100},
	{"Americano", "Espresso with hot water", "Coffee", "cup", "3.00", 100},
	{"Cappuccino", "Espresso with steamed milk and foam", "Coffee", "cup", "4.50", 75},
	{"Latte", "Espresso with steamed milk", "Coffee", "cup", "5.00", 80},
	{"Mocha", "Chocolate coffee with steamed milk", "Coffee", "cup", "5.50", 60},
	{"Macchiato", "Espresso with a dollop of foamed milk", "Coffee", "cup", "4.75", 50},
	{"Iced Coffee", "Cold brew coffee over ice", "Cold Drinks", "cup", "3.50", 90},
	{"Iced Latte", "Espresso with cold milk over ice", "Cold Drinks", "cup", "5.25", 70},
	{"Frappuccino", "Blended coffee with ice and milk", "Cold Drinks", "cup", "6.00", 45},
	{"Green Tea", "Premium green tea", "Tea", "cup", "2.75", 40},
	{"Chai Latte", "Spiced tea with steamed milk", "Tea", "cup", "4.25", 35},
	{"Hot Chocolate", "Rich chocolate drink with whipped cream", "Hot Drinks", "cup", "3.75", 55},
	{"Croissant", "Buttery, flaky pastry", "Pastry", "piece", "3.25", 25},
	{"Blueberry Muffin", "Fresh baked muffin with blueberries", "Pastry", "piece", "2.75", 20},
	{"Chocolate Chip Cookie", "Homemade chocolate chip cookie", "Pastry", "piece", "2.25", 30},
	{"Bagel with Cream Cheese", "Fresh bagel served with cream cheese", "Food", "piece", "4.50", 15},
	{"Avocado Toast", "Toasted bread with fresh avocado", "Food", "piece", "7.50", 12},
	{"Breakfast Sandwich", "Egg, cheese, and bacon on English muffin", "Food", "piece", "6.75", 8},
	{"Premium Dark Roast", "Artisan dark roast coffee beans", "Coffee", "cup", "5.75", 3},
	{"Organic Matcha Latte", "Organic matcha powder with steamed milk", "Tea", "cup", "5.50", 5},
}

func seedProducts(db *gorm.DB, log *slog.Logger) error {
	for _, p := range menu {
		var count int64
		if err := db.Model(&models.Product{}).Where("name = ?", p.name).Count(&count).Error; err != nil {
			return fmt.Errorf("query seed product %s: %w", p.name, err)
		}
		if count > 0 {
			continue
		}

		description := p.description
		product := models.Product{
			Name:          p.name,
			Description:   &description,
			Category:      p.category,
			Price:         decimal.RequireFromString(p.price),
			StockQuantity: p.stock,
			Unit:          p.unit,
			IsActive:      true,
		}
		if err := db.Create(&product).Error; err != nil {
			return fmt.Errorf("create seed product %s: %w", p.name, err)
		}
		log.Debug("initialized default product", "name", p.name)
	}
	return nil
}
