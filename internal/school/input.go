package school

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

const (
	DefaultNumDays        = 5
	DefaultLessonDuration = 60
)

// InputFromJson loads a school input file. Keys are matched
// case-insensitively, so both teacherId and teacher_id decode.
func InputFromJson(file string) (*Input, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("cannot read input file: %w", err)
	}
	return InputFromBytes(bytes)
}

func InputFromBytes(bytes []byte) (*Input, error) {
	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return nil, fmt.Errorf("cannot parse input file: %w", err)
	}

	var input Input
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &input,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(inputJson); err != nil {
		return nil, fmt.Errorf("cannot decode input: %w", err)
	}

	applyDefaults(&input)
	if err := checkReferences(&input); err != nil {
		return nil, err
	}
	return &input, nil
}

func applyDefaults(input *Input) {
	if input.Config.NumDays == 0 {
		input.Config.NumDays = DefaultNumDays
	}
	if input.Config.DefaultDuration == 0 {
		input.Config.DefaultDuration = DefaultLessonDuration
	}
	for i := range input.Lessons {
		if input.Lessons[i].DurationMinutes == 0 {
			input.Lessons[i].DurationMinutes = input.Config.DefaultDuration
		}
		if input.Lessons[i].LessonsPerWeek == 0 {
			input.Lessons[i].LessonsPerWeek = 1
		}
	}
}

// checkReferences rejects lessons that point at unknown entities. The
// solver assumes the cross-references it receives resolve.
func checkReferences(input *Input) error {
	for _, lesson := range input.Lessons {
		if _, ok := input.Teacher(lesson.TeacherId); !ok {
			return fmt.Errorf("lesson %s: unknown teacher %s", lesson.Id, lesson.TeacherId)
		}
		if _, ok := input.Class(lesson.ClassId); !ok {
			return fmt.Errorf("lesson %s: unknown class %s", lesson.Id, lesson.ClassId)
		}
		if _, ok := input.Subject(lesson.SubjectId); !ok {
			return fmt.Errorf("lesson %s: unknown subject %s", lesson.Id, lesson.SubjectId)
		}
	}
	return nil
}
