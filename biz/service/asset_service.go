package service

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tradex-hertz/biz/dal/pg"
	"tradex-hertz/biz/model"
	"tradex-hertz/biz/util"
)

type AssetService struct {
	assets *pg.AssetRepo
}

func NewAssetService(db *gorm.DB) *AssetService {
	return &AssetService{assets: pg.NewAssetRepo(db)}
}

// List 资产列表
func (s *AssetService) List(kind string) ([]model.Asset, error) {
	return s.assets.ListAssets(kind)
}

// GetBySymbol 按符号查询
func (s *AssetService) GetBySymbol(symbol string) (*model.Asset, error) {
	asset, err := s.assets.GetAssetBySymbol(util.NormalizeSymbol(symbol))
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, ErrNotFound
	}
	return asset, nil
}

// Resolve 解析交易引用的资产：先按ID、再按符号，都没有则以给定价格惰性建档。
// 建档发生在交易事务之外；并发撞 symbol 唯一索引时重查一次。
func (s *AssetService) Resolve(assetID uint, symbol string, price decimal.Decimal) (*model.Asset, error) {
	if assetID != 0 {
		asset, err := s.assets.GetAssetByID(assetID)
		if err != nil {
			return nil, err
		}
		if asset != nil {
			return asset, nil
		}
	}
	symbol = util.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, ErrNotFound
	}
	asset, err := s.assets.GetAssetBySymbol(symbol)
	if err != nil {
		return nil, err
	}
	if asset != nil {
		return asset, nil
	}

	asset = &model.Asset{
		Symbol:   symbol,
		Name:     symbol,
		Kind:     model.AssetKindCrypto,
		PriceUSD: price,
	}
	if err := s.assets.CreateAsset(asset); err != nil {
		// 并发首次引用同一 symbol：唯一索引兜底，重查一次
		existing, qerr := s.assets.GetAssetBySymbol(symbol)
		if qerr == nil && existing != nil {
			return existing, nil
		}
		return nil, err
	}
	return asset, nil
}

// Save 管理端新增/更新资产（含质押参数）
func (s *AssetService) Save(asset *model.Asset) error {
	asset.Symbol = util.NormalizeSymbol(asset.Symbol)
	return s.assets.SaveAsset(asset)
}

// Delete 管理端删除资产
func (s *AssetService) Delete(id uint) error {
	asset, err := s.assets.GetAssetByID(id)
	if err != nil {
		return err
	}
	if asset == nil {
		return ErrNotFound
	}
	return s.assets.DeleteAsset(id)
}
