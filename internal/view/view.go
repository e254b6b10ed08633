// Package view models the widget's three screens as a tagged union.
// Construction goes through the screen constructors, so a feedback or
// success screen always carries its subject teacher and the stale
// selection state of a plain enum cannot be represented.
package view

import (
	"fmt"

	"github.com/cmcleod/classpulse/internal/domain/model"
)

// Kind discriminates the three screens.
type Kind int

// Screen kinds.
const (
	KindHome Kind = iota
	KindFeedback
	KindSuccess
)

// String returns the metric and log label for the kind.
func (k Kind) String() string {
	switch k {
	case KindHome:
		return "home"
	case KindFeedback:
		return "feedback"
	case KindSuccess:
		return "success"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// View is one screen plus its payload. The zero value is the home
// screen.
type View struct {
	kind    Kind
	teacher model.Teacher
}

// Home is the browse screen over the full roster.
func Home() View {
	return View{kind: KindHome}
}

// FeedbackFor is the rating form for one teacher.
func FeedbackFor(t model.Teacher) View {
	return View{kind: KindFeedback, teacher: t}
}

// SuccessFor is the confirmation screen after a submitted review.
func SuccessFor(t model.Teacher) View {
	return View{kind: KindSuccess, teacher: t}
}

// Kind returns the screen discriminant.
func (v View) Kind() Kind {
	return v.kind
}

// Teacher returns the subject teacher for feedback and success screens.
// The second return is false on the home screen.
func (v View) Teacher() (model.Teacher, bool) {
	if v.kind == KindHome {
		return model.Teacher{}, false
	}
	return v.teacher, true
}

// String renders the view for logs, e.g. "feedback(Dr. Priya Sharma)".
func (v View) String() string {
	if t, ok := v.Teacher(); ok {
		return fmt.Sprintf("%s(%s)", v.kind, t.Name)
	}
	return v.kind.String()
}
