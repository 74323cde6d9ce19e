package models

// BatchItem is the outcome of one product in a batch extraction.
type BatchItem struct {
	Index    int                       `json:"index"`
	Title    string                    `json:"title,omitempty"`
	Price    string                    `json:"price,omitempty"`
	Source   string                    `json:"source,omitempty"`
	IsBackup bool                      `json:"is_backup"`
	Success  bool                      `json:"success"`
	Error    string                    `json:"error,omitempty"`
	Record   *ProductDescriptionRecord `json:"record"`
}

// BatchResponse is the response for POST /api/v1/extract/batch.
type BatchResponse struct {
	Status      string       `json:"status"` // "completed", "partial", "failed"
	TargetCount int          `json:"target_count"`
	Results     []BatchItem  `json:"results"`
	Failed      []BatchItem  `json:"failed"`
	BackupsUsed []int        `json:"backups_used"`
	Timing      TimingInfo   `json:"timing"`
	Error       *ErrorDetail `json:"error,omitempty"`
}
