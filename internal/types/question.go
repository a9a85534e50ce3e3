package types

import "time"

type SolutionApproach struct {
	Name        string `json:"name"`
	Explanation string `json:"explanation"`
}

type Question struct {
	ID                 string             `json:"id"`
	Title              string             `json:"title"`
	Content            string             `json:"content"`
	Difficulty         string             `json:"difficulty"`
	StepNumber         int64              `json:"step_number"`
	SubStepNumber      int64              `json:"sub_step_number"`
	SequenceNumber     int64              `json:"sequence_number"`
	StandardConcepts   []string           `json:"standard_concepts"`
	SubConcepts        []string           `json:"sub_concepts"`
	SolutionApproaches []SolutionApproach `json:"solution_approaches"`
}

// DisplayOrder is the curriculum ordering key: questions sort ascending by
// (step, sub-step, sequence).
func (q *Question) DisplayOrder() (int64, int64, int64) {
	return q.StepNumber, q.SubStepNumber, q.SequenceNumber
}

type Student struct {
	StudentID  string     `json:"student_id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	LastActive *time.Time `json:"last_active,omitempty"`
}

type StudentProgress struct {
	StudentID             string   `json:"student_id"`
	AttemptedCount        int64    `json:"attempted_count"`
	MasteredCount         int64    `json:"mastered_count"`
	MasteredConceptsCount int64    `json:"mastered_concepts_count"`
	AttemptedQuestionIDs  []string `json:"attempted_questions"`
	MasteredQuestionIDs   []string `json:"mastered_questions"`
}
