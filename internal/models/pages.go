package models

// HomePage is the public listing of answered questions.
type HomePage struct {
	Questions []Question `json:"questions"`
}

// DashboardPage is an asker's own questions, answered or not.
type DashboardPage struct {
	User      RoleSnapshot `json:"user"`
	Home      string       `json:"home"`
	Questions []Question   `json:"questions"`
}

// AdminPage is the administrator's board.
type AdminPage struct {
	User         RoleSnapshot `json:"user"`
	Unanswered   []Question   `json:"unanswered"`
	Answered     []Question   `json:"answered"`
	PendingCount int64        `json:"pendingCount"`
}

// ContactMessage is a contact form submission relayed by email.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}
