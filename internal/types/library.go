package types

// Question is an interview question in a role's custom bank.
type Question struct {
	ID         string `json:"id"`
	Text       string `json:"text" validate:"required"`
	Category   string `json:"category,omitempty"`
	Difficulty string `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
	Role       string `json:"role,omitempty"`
}

// GetID returns the question identifier.
func (q Question) GetID() string { return q.ID }

// Interviewer is an entry in the interviewer directory.
type Interviewer struct {
	ID         string `json:"id"`
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Title      string `json:"title,omitempty"`
	Department string `json:"department,omitempty"`
}

// GetID returns the interviewer identifier.
func (i Interviewer) GetID() string { return i.ID }
