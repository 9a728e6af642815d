// Package progress 将每次运行的阶段状态发布到 Redis，供外部监控读取。
// 未配置 Redis 时 Publisher 为 nil，所有方法安全空转。
package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RunState 单次运行的当前状态。
type RunState struct {
	RunID     string    `json:"run_id"`
	Step      string    `json:"step"`
	Outcome   string    `json:"outcome,omitempty"`
	EventID   int64     `json:"event_id,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Publisher Redis 状态发布器。
type Publisher struct {
	rdb   *redis.Client
	key   string
	runID string
}

// NewPublisher 建立 Redis 连接并分配本次运行的标识。
func NewPublisher(addr, password, key string) (*Publisher, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return &Publisher{rdb: rdb, key: key, runID: uuid.NewString()}, nil
}

// RunID 本次运行的标识。
func (p *Publisher) RunID() string {
	if p == nil {
		return ""
	}
	return p.runID
}

// Publish 上报当前阶段。发布失败不中断主流程，由调用方决定是否记录。
func (p *Publisher) Publish(ctx context.Context, step, outcome string, eventID int64) error {
	if p == nil {
		return nil
	}
	state := RunState{
		RunID:     p.runID,
		Step:      step,
		Outcome:   outcome,
		EventID:   eventID,
		UpdatedAt: time.Now(),
	}
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return p.rdb.Set(ctx, p.key, string(data), 0).Err()
}

// Close 关闭连接。
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.rdb.Close()
}
