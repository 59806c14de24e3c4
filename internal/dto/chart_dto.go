package dto

import "time"

type ChartImageRequest struct {
	Timeframe string `json:"timeframe" validate:"required,max=20"`
	ImageId   string `json:"image_id" validate:"required,max=255"`
}

type AnalyzeChartsRequest struct {
	Symbol string              `json:"symbol" validate:"required,max=32"`
	Images []ChartImageRequest `json:"images" validate:"required,min=1,max=10,dive"`
}

type ChartAnalysis struct {
	Recommendation string   `json:"recommendation" validate:"required,oneof=LONG SHORT WAIT"`
	Confidence     int      `json:"confidence" validate:"gte=0,lte=100"`
	Analysis       string   `json:"analysis"`
	Patterns       []string `json:"patterns"`
}

type CreateSnapshotRequest struct {
	Symbol   string              `json:"symbol" validate:"required,max=32"`
	Images   []ChartImageRequest `json:"images" validate:"required,min=1,max=10,dive"`
	Analysis *ChartAnalysis      `json:"analysis"`
}

type ScreenshotResponse struct {
	Id        int64     `json:"id"`
	Timeframe string    `json:"timeframe"`
	FileKey   string    `json:"file_key"`
	Url       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

type SnapshotResponse struct {
	Id             int64                 `json:"id"`
	Symbol         string                `json:"symbol"`
	Recommendation *string               `json:"recommendation"`
	Confidence     *int                  `json:"confidence"`
	Analysis       *string               `json:"analysis"`
	Patterns       []string              `json:"patterns"`
	Screenshots    []*ScreenshotResponse `json:"screenshots"`
	CreatedAt      time.Time             `json:"created_at"`
}
