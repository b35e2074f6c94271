package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/segmentio/kafka-go"
)

// 业务事件 topic 名（conf.Kafka.Topics 的 key）
const (
	TopicTrades  = "trades"
	TopicFunding = "funding"
	TopicStaking = "staking"
	TopicPrices  = "prices"
)

// Publisher 维护按 topic 复用的 kafka.Writer，异步写入
type Publisher struct {
	brokers []string
	topics  map[string]string
	writers sync.Map // map[string]*kafka.Writer
}

// NewPublisher 创建事件发布器，brokers 为空时返回 nil（事件流可选）
func NewPublisher(brokers []string, topics map[string]string) *Publisher {
	if len(brokers) == 0 {
		return nil
	}
	return &Publisher{brokers: brokers, topics: topics}
}

// TestConnection 测试 Kafka 连接，nil Publisher 时为 no-op
func (p *Publisher) TestConnection(ctx context.Context) error {
	if p == nil {
		return nil
	}
	conn, err := kafka.DialContext(ctx, "tcp", p.brokers[0])
	if err != nil {
		return fmt.Errorf("failed to connect to kafka: %w", err)
	}
	return conn.Close()
}

func (p *Publisher) getWriter(topic string) *kafka.Writer {
	if val, ok := p.writers.Load(topic); ok {
		return val.(*kafka.Writer)
	}
	writer := &kafka.Writer{
		Addr:  kafka.TCP(p.brokers...),
		Topic: topic,
		Async: true,
	}
	p.writers.Store(topic, writer)
	return writer
}

// Publish 发布事件，value 序列化为 JSON；发布失败只记日志不回传
// nil Publisher 时为 no-op
func (p *Publisher) Publish(ctx context.Context, topicKey, key string, value any) {
	if p == nil {
		return
	}
	topic, ok := p.topics[topicKey]
	if !ok || topic == "" {
		return
	}
	msgBytes, err := json.Marshal(value)
	if err != nil {
		hlog.Errorf("kafka event marshal failed: %v", err)
		return
	}
	if err := p.getWriter(topic).WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: msgBytes,
	}); err != nil {
		hlog.Errorf("kafka event publish failed, topic=%s: %v", topic, err)
	}
}

// Close 关闭所有 writer
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	p.writers.Range(func(key, value interface{}) bool {
		if w, ok := value.(*kafka.Writer); ok {
			_ = w.Close()
		}
		return true
	})
}
