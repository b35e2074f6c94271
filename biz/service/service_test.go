package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tradex-hertz/biz/dal/pg"
	"tradex-hertz/biz/model"
)

// newTestDB 每个测试独立的内存库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := pg.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

func mustUser(t *testing.T, db *gorm.DB, email string, balance decimal.Decimal) *model.User {
	t.Helper()
	user := &model.User{
		Email:        email,
		PasswordHash: "x",
		Role:         model.RoleUser,
		Balance:      balance,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func mustAsset(t *testing.T, db *gorm.DB, asset *model.Asset) *model.Asset {
	t.Helper()
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("create asset: %v", err)
	}
	return asset
}

func mustAssetBalance(t *testing.T, db *gorm.DB, userID, assetID uint, amount decimal.Decimal) {
	t.Helper()
	bal := &model.UserAssetBalance{UserID: userID, AssetID: assetID, Amount: amount}
	if err := db.Create(bal).Error; err != nil {
		t.Fatalf("create asset balance: %v", err)
	}
}

func userBalance(t *testing.T, db *gorm.DB, userID uint) decimal.Decimal {
	t.Helper()
	var user model.User
	if err := db.First(&user, userID).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	return user.Balance
}

func assetBalance(t *testing.T, db *gorm.DB, userID, assetID uint) decimal.Decimal {
	t.Helper()
	var bal model.UserAssetBalance
	err := db.Where("user_id = ? AND asset_id = ?", userID, assetID).First(&bal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero
	}
	if err != nil {
		t.Fatalf("load asset balance: %v", err)
	}
	return bal.Amount
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
