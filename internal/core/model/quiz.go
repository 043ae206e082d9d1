package model

type QuizQuestion struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"len=4,dive,required"`
	CorrectAnswer *int     `json:"correctAnswer" validate:"required,min=0,max=3"`
	Explanation   string   `json:"explanation"`
}

type Quiz struct {
	Questions []QuizQuestion `json:"questions"`
	Location  string         `json:"location"`
	Source    string         `json:"source"`
}

type Source struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content,omitempty"`
}

type Knowledge struct {
	Location    string   `json:"location"`
	Topic       string   `json:"topic"`
	Information string   `json:"information"`
	Sources     []Source `json:"sources"`
	Fallback    bool     `json:"fallback,omitempty"`
}

type LearningModule struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url,omitempty"`
}
