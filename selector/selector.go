// Package selector 实现加权随机选取策略：
// "Soon" 行 0.8，最近截止 0.1，随机有效行 0.1；无 Soon 行时按 0.9/0.1 重新分配。
package selector

import (
	"errors"
	"math/rand"
	"time"

	"gisource-automation/posting"
)

// ErrNoCandidates 候选池为空或全部过期。
var ErrNoCandidates = errors.New("no eligible candidates")

// 权重为历史行为的字面复刻，空桶缺位时不做等比缩放。
const (
	weightUrgent  = 0.8
	weightNearest = 0.1
	weightRandom  = 0.1
)

// Select 从候选池中选出一条。随机源由调用方注入以便测试复现。
// Soon 行不参与日期桶；已过期的日期行从所有桶中剔除。
func Select(pool []*posting.Posting, today time.Time, rng *rand.Rand) (*posting.Posting, error) {
	var urgent []*posting.Posting
	var dated []*posting.Posting

	for _, p := range pool {
		switch p.Deadline.Kind {
		case posting.DeadlineSoon:
			urgent = append(urgent, p)
		case posting.DeadlineDate:
			if !p.Deadline.Before(today) {
				dated = append(dated, p)
			}
		}
	}

	var nearest *posting.Posting
	for _, p := range dated {
		if nearest == nil || p.Deadline.Date.Before(nearest.Deadline.Date) {
			nearest = p
		}
	}

	var choices []*posting.Posting
	var weights []float64

	if len(urgent) > 0 {
		choices = append(choices, urgent[rng.Intn(len(urgent))])
		weights = append(weights, weightUrgent)
	}
	if nearest != nil {
		choices = append(choices, nearest)
		weights = append(weights, weightNearest)
	}
	if len(dated) > 0 {
		choices = append(choices, dated[rng.Intn(len(dated))])
		weights = append(weights, weightRandom)
	}

	if len(choices) == 0 {
		return nil, ErrNoCandidates
	}

	if len(urgent) == 0 && len(weights) == 2 {
		weights[0] = 0.9
		weights[1] = 0.1
	}

	var sum float64
	for _, w := range weights {
		sum += w
	}
	r := rng.Float64() * sum
	for i, w := range weights {
		r -= w
		if r < 0 {
			return choices[i], nil
		}
	}
	return choices[len(choices)-1], nil
}
