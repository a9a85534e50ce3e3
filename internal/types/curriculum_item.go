package types

// CurriculumItem is the typed form of one ingest record. Raw JSON objects are
// validated and decoded into this at the pipeline boundary; the graph layer
// never sees untyped maps.
type CurriculumItem struct {
	ID                 string
	QuestionTitle      string
	Question           string
	Difficulty         string
	StepNo             int64
	SubStepNo          int64
	SlNo               int64
	StandardConcepts   []string
	SubConcepts        []string
	SolutionApproaches []SolutionApproach
}

type IngestReport struct {
	RunID          string   `json:"run_id"`
	TotalItems     int      `json:"total_items"`
	ProcessedItems int      `json:"processed_items"`
	FailedItems    int      `json:"failed_items"`
	InvalidItems   int      `json:"invalid_items"`
	FailedItemIDs  []string `json:"failed_item_ids"`
	InvalidItemIDs []string `json:"invalid_item_ids"`
}

type ValidationReport struct {
	TotalItems     int      `json:"total_items"`
	ValidItems     int      `json:"valid_items"`
	InvalidItems   int      `json:"invalid_items"`
	InvalidItemIDs []string `json:"invalid_item_ids"`
	Reasons        []string `json:"reasons,omitempty"`
}

type DatabaseStatistics struct {
	Nodes         map[string]int64 `json:"nodes"`
	Relationships map[string]int64 `json:"relationships"`
}
