package pg

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tradex-hertz/biz/model"
)

type AssetRepo struct {
	db *gorm.DB
}

func NewAssetRepo(db *gorm.DB) *AssetRepo {
	return &AssetRepo{db: db}
}

// CreateAsset 插入资产
func (r *AssetRepo) CreateAsset(asset *model.Asset) error {
	return r.db.Create(asset).Error
}

// SaveAsset 全量更新资产
func (r *AssetRepo) SaveAsset(asset *model.Asset) error {
	return r.db.Save(asset).Error
}

// GetAssetByID 查询单个资产
func (r *AssetRepo) GetAssetByID(id uint) (*model.Asset, error) {
	var asset model.Asset
	err := r.db.First(&asset, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// GetAssetBySymbol 按符号查询资产，不存在返回 nil
func (r *AssetRepo) GetAssetBySymbol(symbol string) (*model.Asset, error) {
	var asset model.Asset
	err := r.db.Where("symbol = ?", symbol).First(&asset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// ListAssets 查询资产列表
func (r *AssetRepo) ListAssets(kind string) ([]model.Asset, error) {
	var assets []model.Asset
	db := r.db.Model(&model.Asset{})
	if kind != "" {
		db = db.Where("kind = ?", kind)
	}
	err := db.Order("symbol").Find(&assets).Error
	return assets, err
}

// UpdateAssetPrice 更新落库报价
func (r *AssetRepo) UpdateAssetPrice(symbol string, price decimal.Decimal) error {
	return r.db.Model(&model.Asset{}).Where("symbol = ?", symbol).Update("price_usd", price).Error
}

// DeleteAsset 删除资产
func (r *AssetRepo) DeleteAsset(id uint) error {
	return r.db.Delete(&model.Asset{}, id).Error
}
