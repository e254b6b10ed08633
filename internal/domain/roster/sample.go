package roster

import "github.com/cmcleod/classpulse/internal/domain/model"

// DefaultTeachers returns the built-in faculty list used when no roster
// file is configured. Ordering matters: it fixes department order and
// tie order everywhere downstream.
func DefaultTeachers() []model.Teacher {
	return []model.Teacher{
		{ID: 1, Name: "Dr. Rajesh Kumar", Department: "Computer Science", Subject: "Data Structures"},
		{ID: 2, Name: "Dr. Priya Sharma", Department: "Mathematics", Subject: "Linear Algebra"},
		{ID: 3, Name: "Prof. Anil Mehta", Department: "Physics", Subject: "Quantum Mechanics"},
		{ID: 4, Name: "Dr. Sunita Verma", Department: "Computer Science", Subject: "Operating Systems"},
		{ID: 5, Name: "Prof. Vikram Singh", Department: "Electronics", Subject: "Digital Circuits"},
		{ID: 6, Name: "Dr. Kavita Joshi", Department: "English", Subject: "Technical Communication"},
	}
}
