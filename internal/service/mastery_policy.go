// internal/service/mastery_policy.go
package service

import (
	"time"

	"langfeed/internal/model"
)

// MasteryPolicy は復習結果から次の習熟度と復習日時を決める差し替え可能なポリシーです。
// スケジューラ本体は値を消費するだけで、増減ルールはこの背後に隠します。
type MasteryPolicy interface {
	Advance(record *model.Word, correct bool, latency time.Duration, now time.Time) (masteryLevel int, nextReview time.Time)
}

// defaultMasteryPolicy は間隔反復の標準ラダーです。
// 不正解は習熟度0に戻して翌日、正解は習熟度+1して間隔を伸ばします。
type defaultMasteryPolicy struct{}

func NewDefaultMasteryPolicy() MasteryPolicy {
	return &defaultMasteryPolicy{}
}

// 新しい習熟度に対する次回復習までの日数
var reviewIntervalDays = []int{1, 3, 7, 14, 30}

func (p *defaultMasteryPolicy) Advance(record *model.Word, correct bool, latency time.Duration, now time.Time) (int, time.Time) {
	if !correct {
		// 間違えたら習熟度をリセットし、翌日もう一度
		return 0, now.AddDate(0, 0, 1)
	}

	newLevel := record.MasteryLevel + 1
	idx := newLevel - 1
	if idx >= len(reviewIntervalDays) {
		idx = len(reviewIntervalDays) - 1
	}
	return newLevel, now.AddDate(0, 0, reviewIntervalDays[idx])
}
