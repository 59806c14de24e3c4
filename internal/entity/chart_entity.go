package entity

import "time"

type Recommendation string

const (
	RecommendationLong  Recommendation = "LONG"
	RecommendationShort Recommendation = "SHORT"
	RecommendationWait  Recommendation = "WAIT"
)

type ChartSnapshot struct {
	Id             int64
	UserId         int64
	Symbol         string
	Recommendation *Recommendation
	Confidence     *int
	Analysis       *string
	Patterns       []string
	CreatedAt      time.Time
	Screenshots    []*ChartScreenshot
}

type ChartScreenshot struct {
	Id         int64
	SnapshotId int64
	Timeframe  string
	FileKey    string
	CreatedAt  time.Time
}
