package service

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tradex-hertz/biz/dal/kafka"
	"tradex-hertz/biz/dal/pg"
	"tradex-hertz/biz/dal/redis"
	"tradex-hertz/biz/model"
	"tradex-hertz/biz/util"
)

var klinePeriodSeconds = map[string]int64{
	"1m":  60,
	"5m":  300,
	"15m": 900,
	"30m": 1800,
	"1h":  3600,
	"4h":  14400,
	"1d":  86400,
	"1w":  604800,
}

// Broadcaster 行情推送回调（WebSocket 扇出）
type Broadcaster func(symbol string, msg []byte)

// Tick 一次价格推送
type Tick struct {
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Timestamp int64           `json:"timestamp"`
}

type PriceService struct {
	db        *gorm.DB
	assets    *pg.AssetRepo
	klines    *pg.KlineRepo
	rdb       *goredis.Client
	events    *kafka.Publisher
	broadcast Broadcaster
	quoteTTL  time.Duration
	periods   []string
}

func NewPriceService(db *gorm.DB, rdb *goredis.Client, events *kafka.Publisher,
	broadcast Broadcaster, quoteTTL time.Duration, periods []string) *PriceService {
	if len(periods) == 0 {
		periods = []string{"1m", "1h", "1d"}
	}
	return &PriceService{
		db:        db,
		assets:    pg.NewAssetRepo(db),
		klines:    pg.NewKlineRepo(db),
		rdb:       rdb,
		events:    events,
		broadcast: broadcast,
		quoteTTL:  quoteTTL,
		periods:   periods,
	}
}

// Quote 查询实时报价：优先 Redis 缓存，单次尝试，取不到回退落库价。
// 不做重试，与跟单结算的回退语义一致。
func (s *PriceService) Quote(ctx context.Context, symbol string) (decimal.Decimal, error) {
	symbol = util.NormalizeSymbol(symbol)
	if s.rdb != nil {
		val, err := s.rdb.Get(ctx, redis.QuoteKey(symbol)).Result()
		if err == nil {
			if price, perr := decimal.NewFromString(val); perr == nil {
				return price, nil
			}
		}
	}
	asset, err := s.assets.GetAssetBySymbol(symbol)
	if err != nil {
		return decimal.Zero, err
	}
	if asset == nil {
		return decimal.Zero, ErrNotFound
	}
	return asset.PriceUSD, nil
}

// Ingest 接收一次价格推送：更新落库价、刷新缓存、聚合K线、发事件、WS 广播
func (s *PriceService) Ingest(ctx context.Context, symbol string, price decimal.Decimal) error {
	symbol = util.NormalizeSymbol(symbol)
	if !price.IsPositive() {
		return ErrInvalidAmount
	}
	asset, err := s.assets.GetAssetBySymbol(symbol)
	if err != nil {
		return err
	}
	if asset == nil {
		return ErrNotFound
	}
	if err := s.assets.UpdateAssetPrice(symbol, price); err != nil {
		return err
	}

	now := time.Now()
	if s.rdb != nil {
		_ = s.rdb.Set(ctx, redis.QuoteKey(symbol), price.String(), s.quoteTTL).Err()
	}
	s.rollCandles(symbol, price, now.Unix())

	tick := Tick{Symbol: symbol, Price: price, Timestamp: now.UnixMilli()}
	s.events.Publish(ctx, kafka.TopicPrices, symbol, tick)
	if s.broadcast != nil {
		if msg, err := json.Marshal(tick); err == nil {
			s.broadcast(symbol, msg)
		}
	}
	return nil
}

// Klines K线历史
func (s *PriceService) Klines(symbol, period string, limit int) ([]model.Kline, error) {
	if _, ok := klinePeriodSeconds[period]; !ok {
		return nil, ErrNotFound
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.klines.ListKlines(util.NormalizeSymbol(symbol), period, limit)
}

// rollCandles 把一次报价按各周期并入K线桶。
// 读改写在事务内进行，并发写入不丢高低点。
func (s *PriceService) rollCandles(symbol string, price decimal.Decimal, ts int64) {
	priceStr := price.String()
	for _, period := range s.periods {
		secs, ok := klinePeriodSeconds[period]
		if !ok {
			continue
		}
		bucket := ts - ts%secs
		_ = s.db.Transaction(func(tx *gorm.DB) error {
			klines := pg.NewKlineRepo(tx)
			k, err := klines.GetKline(symbol, period, bucket)
			if err != nil {
				return err
			}
			if k == nil {
				return klines.CreateKline(&model.Kline{
					Symbol:    symbol,
					Period:    period,
					Timestamp: bucket,
					Open:      priceStr,
					Close:     priceStr,
					High:      priceStr,
					Low:       priceStr,
				})
			}
			k.Close = priceStr
			if high, err := decimal.NewFromString(k.High); err == nil && price.GreaterThan(high) {
				k.High = priceStr
			}
			if low, err := decimal.NewFromString(k.Low); err == nil && price.LessThan(low) {
				k.Low = priceStr
			}
			return klines.SaveKline(k)
		})
	}
}
