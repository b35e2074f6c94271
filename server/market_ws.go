package server

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/websocket"
	"github.com/panjf2000/ants/v2"

	"tradex-hertz/biz/util"
)

const shardNum = 32

var upgrader = websocket.HertzUpgrader{
	CheckOrigin: func(ctx *app.RequestContext) bool {
		return true // 允许所有跨域 WebSocket 连接
	},
}

type symbolShard struct {
	mu   sync.RWMutex
	subs map[string]map[*websocket.Conn]struct{}
}

// MarketHub 行情推送：按 symbol 分片维护订阅连接，协程池扇出
type MarketHub struct {
	shards [shardNum]*symbolShard
	pool   *ants.Pool
}

func NewMarketHub(poolSize int) (*MarketHub, error) {
	if poolSize <= 0 {
		poolSize = 1024
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}
	h := &MarketHub{pool: pool}
	for i := 0; i < shardNum; i++ {
		h.shards[i] = &symbolShard{subs: make(map[string]map[*websocket.Conn]struct{})}
	}
	return h, nil
}

func (h *MarketHub) shard(symbol string) *symbolShard {
	return h.shards[fnv32(symbol)%shardNum]
}

func fnv32(key string) uint32 {
	var v uint32 = 2166136261
	for i := 0; i < len(key); i++ {
		v ^= uint32(key[i])
		v *= 16777619
	}
	return v
}

type wsMessage struct {
	Action string `json:"action"`
	Symbol string `json:"symbol"`
}

// Handler WebSocket 入口：?symbols=BTC,ETH 预订阅，连接内可再发
// {"action":"subscribe","symbol":"BTC"} / unsubscribe 调整
func (h *MarketHub) Handler(ctx context.Context, c *app.RequestContext) {
	initial := util.ParseSymbols(string(c.Query("symbols")))
	err := upgrader.Upgrade(c, func(conn *websocket.Conn) {
		for _, sym := range initial {
			h.subscribe(sym, conn)
		}
		defer h.cleanConn(conn)
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var m wsMessage
			if err := json.Unmarshal(msg, &m); err != nil {
				continue
			}
			sym := util.NormalizeSymbol(m.Symbol)
			if sym == "" {
				continue
			}
			switch m.Action {
			case "subscribe":
				h.subscribe(sym, conn)
			case "unsubscribe":
				h.unsubscribe(sym, conn)
			}
		}
	})
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
	}
}

func (h *MarketHub) subscribe(symbol string, conn *websocket.Conn) {
	shard := h.shard(symbol)
	shard.mu.Lock()
	if shard.subs[symbol] == nil {
		shard.subs[symbol] = make(map[*websocket.Conn]struct{})
	}
	shard.subs[symbol][conn] = struct{}{}
	shard.mu.Unlock()
}

func (h *MarketHub) unsubscribe(symbol string, conn *websocket.Conn) {
	shard := h.shard(symbol)
	shard.mu.Lock()
	if conns := shard.subs[symbol]; conns != nil {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(shard.subs, symbol)
		}
	}
	shard.mu.Unlock()
}

// cleanConn 清理连接的所有订阅
func (h *MarketHub) cleanConn(conn *websocket.Conn) {
	for i := 0; i < shardNum; i++ {
		shard := h.shards[i]
		shard.mu.Lock()
		for sym, conns := range shard.subs {
			if _, ok := conns[conn]; ok {
				delete(conns, conn)
				if len(conns) == 0 {
					delete(shard.subs, sym)
				}
			}
		}
		shard.mu.Unlock()
	}
	_ = conn.Close()
}

// Broadcast 推送消息给 symbol 的全部订阅者，写失败的连接直接摘除
func (h *MarketHub) Broadcast(symbol string, msg []byte) {
	shard := h.shard(symbol)
	shard.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(shard.subs[symbol]))
	for conn := range shard.subs[symbol] {
		conns = append(conns, conn)
	}
	shard.mu.RUnlock()

	for _, conn := range conns {
		conn := conn
		err := h.pool.Submit(func() {
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Printf("broadcast write failed, removing conn: %v", err)
				h.cleanConn(conn)
			}
		})
		if err != nil {
			log.Printf("broadcast pool submit error: %v", err)
		}
	}
}

// Release 关闭协程池
func (h *MarketHub) Release() {
	h.pool.Release()
}
