// Package validation checks user input before it reaches scoring or
// storage. Scoring assumes well-formed values (no negative reps, known
// types), so anything typed at the CLI passes through here first.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/misterclayt0n/fittrack/internal/models"
	"github.com/misterclayt0n/fittrack/internal/scoring"
)

type ExerciseInput struct {
	Type     string   `validate:"required,oneof=Cardio Lifting"`
	Name     string   `validate:"required,max=100"`
	Duration *float64 `validate:"omitempty,gte=0"`
	Distance *float64 `validate:"omitempty,gte=0"`
	Weight   *float64 `validate:"omitempty,gte=0"`
	Reps     *int     `validate:"omitempty,min=1"`
	Sets     *int     `validate:"omitempty,min=1"`
}

type ProfileInput struct {
	Username string `validate:"required,max=50"`
	Email    string `validate:"required,email"`
}

type GroupInput struct {
	Name string `validate:"required,max=50"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(exerciseFieldsMatchType, ExerciseInput{})
	return v
}

// exerciseFieldsMatchType rejects attributes that belong to the other
// exercise type, e.g. reps on a run.
func exerciseFieldsMatchType(sl validator.StructLevel) {
	in := sl.Current().Interface().(ExerciseInput)
	switch models.ExerciseType(in.Type) {
	case models.ExerciseTypeCardio:
		if in.Weight != nil {
			sl.ReportError(in.Weight, "Weight", "Weight", "cardio_field", "")
		}
		if in.Reps != nil {
			sl.ReportError(in.Reps, "Reps", "Reps", "cardio_field", "")
		}
		if in.Sets != nil {
			sl.ReportError(in.Sets, "Sets", "Sets", "cardio_field", "")
		}
	case models.ExerciseTypeLifting:
		if in.Distance != nil {
			sl.ReportError(in.Distance, "Distance", "Distance", "lifting_field", "")
		}
		if in.Duration != nil {
			sl.ReportError(in.Duration, "Duration", "Duration", "lifting_field", "")
		}
	}
}

// Exercise validates in and builds an exercise with a fresh ID.
func Exercise(in ExerciseInput) (models.Exercise, error) {
	return ExerciseWithID(uuid.New().String(), in)
}

// ExerciseWithID validates in and builds an exercise that replaces the one
// identified by id.
func ExerciseWithID(id string, in ExerciseInput) (models.Exercise, error) {
	in.Type = canonicalType(in.Type)
	in.Name = strings.TrimSpace(in.Name)
	if err := check(in); err != nil {
		return models.Exercise{}, err
	}

	return models.Exercise{
		ID:       id,
		Type:     models.ExerciseType(in.Type),
		Name:     in.Name,
		Duration: in.Duration,
		Distance: in.Distance,
		Weight:   in.Weight,
		Reps:     in.Reps,
		Sets:     in.Sets,
	}, nil
}

// ExerciseFromTOML validates one [[exercise]] entry of a workout import.
func ExerciseFromTOML(def models.ExerciseDefTOML) (models.Exercise, error) {
	return Exercise(ExerciseInput{
		Type:     def.Type,
		Name:     def.Name,
		Duration: def.Duration,
		Distance: def.Distance,
		Weight:   def.Weight,
		Reps:     def.Reps,
		Sets:     def.Sets,
	})
}

func Profile(in ProfileInput) error {
	return check(in)
}

func Group(in GroupInput) error {
	return check(in)
}

// JoinCode normalizes a code typed by the user and checks its shape.
func JoinCode(code string) (string, error) {
	code = scoring.NormalizeGroupCode(code)
	if !scoring.ValidGroupCode(code) {
		return "", fmt.Errorf("invalid join code %q: expected %d letters or digits", code, scoring.GroupCodeLength)
	}
	return code, nil
}

// canonicalType accepts "cardio", "LIFTING" and friends.
func canonicalType(t string) string {
	for _, known := range models.ExerciseTypes {
		if strings.EqualFold(strings.TrimSpace(t), string(known)) {
			return string(known)
		}
	}
	return t
}

func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "email":
		return field + " must be a valid email address"
	case "cardio_field":
		return field + " does not apply to cardio exercises"
	case "lifting_field":
		return field + " does not apply to lifting exercises"
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
