package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// AnswerValue is either a selected option index (MCQ) or source code text (coding)
type AnswerValue struct {
	Option *int
	Code   *string
}

func OptionAnswer(idx int) AnswerValue {
	return AnswerValue{Option: &idx}
}

func CodeAnswer(code string) AnswerValue {
	return AnswerValue{Code: &code}
}

func (v AnswerValue) IsZero() bool {
	return v.Option == nil && v.Code == nil
}

// MarshalJSON emits a bare number or string like the client sends it
func (v AnswerValue) MarshalJSON() ([]byte, error) {
	switch {
	case v.Option != nil:
		return json.Marshal(*v.Option)
	case v.Code != nil:
		return json.Marshal(*v.Code)
	default:
		return []byte("null"), nil
	}
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = AnswerValue{}
		return nil
	}
	if data[0] == '"' {
		var code string
		if err := json.Unmarshal(data, &code); err != nil {
			return err
		}
		*v = CodeAnswer(code)
		return nil
	}
	var idx int
	if err := json.Unmarshal(data, &idx); err != nil {
		return fmt.Errorf("answer must be an option index or code text: %w", err)
	}
	*v = OptionAnswer(idx)
	return nil
}

// Answer is the last written value for (candidate, question)
type Answer struct {
	RollNumber string      `db:"roll_number" json:"rollNumber"`
	QuestionID string      `db:"question_id" json:"questionId"`
	Value      AnswerValue `db:"-" json:"answer"`
	UpdatedAt  time.Time   `db:"updated_at" json:"updatedAt"`
}

type AnswerTable struct {
	RollNumber  string
	QuestionID  string
	OptionIndex string
	Code        string
	UpdatedAt   string
}

func GetAnswerTable() AnswerTable {
	return AnswerTable{
		RollNumber:  "roll_number",
		QuestionID:  "question_id",
		OptionIndex: "option_index",
		Code:        "code",
		UpdatedAt:   "updated_at",
	}
}

func (AnswerTable) TableName() string {
	return "answers"
}
