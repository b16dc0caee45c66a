package domain

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Member is a campus profile. ExternalID is the front-end account id,
// ID the internal surrogate key.
type Member struct {
	ID         uint64
	ExternalID string
	Name       string
	Age        int
	Faculty    string
	Course     string
	PhotoRef   string
	Interests  InterestSet
	CreatedAt  time.Time
}

// Registered members have a name; everyone else is invisible to matching.
func (m *Member) Registered() bool {
	return m != nil && strings.TrimSpace(m.Name) != ""
}

// CanMatch reports whether the member may request candidates.
func (m *Member) CanMatch() bool {
	return m.Registered() && !m.Interests.Empty()
}

// MemberUpdate is a partial profile write. A nil field is left untouched;
// a non-nil pointer to an empty value is an explicit write.
type MemberUpdate struct {
	Name      *string      `validate:"omitnil,min=2,max=64"`
	Age       *int         `validate:"omitnil,gte=16,lte=100"`
	Faculty   *string      `validate:"omitnil,max=128"`
	Course    *string      `validate:"omitnil,number,max=8"`
	PhotoRef  *string      `validate:"omitnil,max=512"`
	Interests *InterestSet `validate:"-"`
}

// Empty reports whether the update carries no fields at all.
func (u MemberUpdate) Empty() bool {
	return u.Name == nil && u.Age == nil && u.Faculty == nil &&
		u.Course == nil && u.PhotoRef == nil && u.Interests == nil
}

// Normalize trims text fields in place.
func (u *MemberUpdate) Normalize() {
	for _, f := range []*string{u.Name, u.Faculty, u.Course, u.PhotoRef} {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
}

// Apply merges the supplied fields into m.
func (u MemberUpdate) Apply(m *Member) {
	if u.Name != nil {
		m.Name = *u.Name
	}
	if u.Age != nil {
		m.Age = *u.Age
	}
	if u.Faculty != nil {
		m.Faculty = *u.Faculty
	}
	if u.Course != nil {
		m.Course = *u.Course
	}
	if u.PhotoRef != nil {
		m.PhotoRef = *u.PhotoRef
	}
	if u.Interests != nil {
		m.Interests = *u.Interests
	}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func fieldValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks the update against profile rules. When registering is
// true the update must complete a profile: name, age, faculty and course
// are required.
func (u *MemberUpdate) Validate(vocab *Vocabulary, registering bool) error {
	u.Normalize()

	if registering {
		switch {
		case u.Name == nil:
			return &ValidationError{Field: "name", Reason: "required"}
		case u.Age == nil:
			return &ValidationError{Field: "age", Reason: "required"}
		case u.Faculty == nil || *u.Faculty == "":
			return &ValidationError{Field: "faculty", Reason: "required"}
		case u.Course == nil:
			return &ValidationError{Field: "course", Reason: "required"}
		}
	}

	if err := fieldValidator().Struct(u); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fromFieldError(verrs[0])
		}
		return err
	}

	if u.Interests != nil && vocab != nil {
		if err := vocab.Check(*u.Interests); err != nil {
			return err
		}
	}
	return nil
}

func fromFieldError(fe validator.FieldError) *ValidationError {
	field := strings.ToLower(fe.Field())
	switch field {
	case "photoref":
		field = "photo_ref"
	}

	var reason string
	switch fe.Tag() {
	case "min":
		reason = fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		reason = fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte", "lte":
		reason = "must be between 16 and 100"
	case "number":
		reason = "must contain digits only"
	default:
		reason = fmt.Sprintf("failed %q check", fe.Tag())
	}
	return &ValidationError{Field: field, Reason: reason}
}
