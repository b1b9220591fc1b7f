package models

// Course — учебный курс.
type Course struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Student — студент, записанный ровно на один курс.
//
// Course заполняется репозиторием через JOIN при чтении.
type Student struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	CourseID int64   `json:"courseId"`
	Course   *Course `json:"course,omitempty"`
}
