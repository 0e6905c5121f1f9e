package document

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/cv-builder/internal/types"
)

// Op names accepted by Apply.
const (
	OpSetPersonal   = "set_personal"
	OpSetText       = "set_text"
	OpSetEntryField = "set_entry_field"
	OpSetRating     = "set_rating"
	OpAddEntry      = "add_entry"
	OpRemoveEntry   = "remove_entry"
	OpSetPoint      = "set_point"
	OpAddPoint      = "add_point"
	OpRemovePoint   = "remove_point"
	OpAddSkill      = "add_skill"
	OpRemoveSkill   = "remove_skill"
)

// Op is a serialisable edit. Which fields are read depends on Op.
type Op struct {
	Op         string   `json:"op" yaml:"op" validate:"required,oneof=set_personal set_text set_entry_field set_rating add_entry remove_entry set_point add_point remove_point add_skill remove_skill"`
	Section    string   `json:"section,omitempty" yaml:"section,omitempty" validate:"required_if=Op set_entry_field,required_if=Op set_rating,required_if=Op add_entry,required_if=Op remove_entry,required_if=Op set_point,required_if=Op add_point,required_if=Op remove_point"`
	Index      int      `json:"index,omitempty" yaml:"index,omitempty" validate:"min=0"`
	Field      string   `json:"field,omitempty" yaml:"field,omitempty" validate:"required_if=Op set_personal,required_if=Op set_entry_field"`
	Block      string   `json:"block,omitempty" yaml:"block,omitempty" validate:"required_if=Op set_text"`
	PointField string   `json:"point_field,omitempty" yaml:"point_field,omitempty" validate:"required_if=Op set_point,required_if=Op add_point,required_if=Op remove_point"`
	PointIndex int      `json:"point_index,omitempty" yaml:"point_index,omitempty" validate:"min=0"`
	Value      string   `json:"value,omitempty" yaml:"value,omitempty"`
	Rating     *float64 `json:"rating,omitempty" yaml:"rating,omitempty" validate:"required_if=Op set_rating"`
	SkillID    types.ID `json:"skill_id,omitempty" yaml:"skill_id,omitempty" validate:"required_if=Op remove_skill"`
}

// OpValidationError reports a malformed op, independent of any document.
type OpValidationError struct {
	Op       string
	Problems []string
}

func (e *OpValidationError) Error() string {
	return fmt.Sprintf("invalid op %q: %s", e.Op, strings.Join(e.Problems, "; "))
}

var (
	opValidatorOnce sync.Once
	opValidator     *validator.Validate
)

// Validate checks that the op is well formed. It does not look at a document;
// addressing errors surface from Apply as *PreconditionError.
func (o Op) Validate() error {
	opValidatorOnce.Do(func() {
		opValidator = validator.New()
	})

	err := opValidator.Struct(o)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problem := fmt.Sprintf("%s: %s", fe.Field(), fe.Tag())
		if fe.Param() != "" && fe.Tag() != "required_if" {
			problem += " " + fe.Param()
		}
		problems = append(problems, problem)
	}
	return &OpValidationError{Op: o.Op, Problems: problems}
}

// Apply validates op and runs it against doc. Preconditions that the store
// enforces with a panic are returned as *PreconditionError.
func (s *Store) Apply(doc types.Document, op Op) (out types.Document, err error) {
	if err := op.Validate(); err != nil {
		return doc, err
	}

	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(*PreconditionError)
			if !ok {
				panic(r)
			}
			out, err = doc, pe
		}
	}()

	switch op.Op {
	case OpSetPersonal:
		return s.SetPersonalField(doc, op.Field, op.Value), nil
	case OpSetText:
		return s.SetText(doc, op.Block, op.Value), nil
	case OpSetEntryField:
		return s.SetEntryField(doc, op.Section, op.Index, op.Field, op.Value), nil
	case OpSetRating:
		return s.SetRating(doc, op.Section, op.Index, *op.Rating), nil
	case OpAddEntry:
		return s.AddEntry(doc, op.Section), nil
	case OpRemoveEntry:
		return s.RemoveEntry(doc, op.Section, op.Index), nil
	case OpSetPoint:
		return s.SetPoint(doc, op.Section, op.Index, op.PointField, op.PointIndex, op.Value), nil
	case OpAddPoint:
		return s.AddPoint(doc, op.Section, op.Index, op.PointField), nil
	case OpRemovePoint:
		return s.RemovePoint(doc, op.Section, op.Index, op.PointField, op.PointIndex), nil
	case OpAddSkill:
		return s.AddSkill(doc, op.Value), nil
	case OpRemoveSkill:
		return s.RemoveSkill(doc, op.SkillID), nil
	}
	return doc, &OpValidationError{Op: op.Op, Problems: []string{"unsupported op"}}
}

// ApplyAll runs ops in order. It is all-or-nothing: on the first failure the
// original document is returned with an *OpError naming the failing op.
func (s *Store) ApplyAll(doc types.Document, ops []Op) (types.Document, error) {
	cur := doc
	for i, op := range ops {
		next, err := s.Apply(cur, op)
		if err != nil {
			return doc, &OpError{Index: i, Op: op.Op, Cause: err}
		}
		cur = next
	}
	return cur, nil
}
