package service

import (
	"strings"
	"unicode/utf8"

	"github.com/lshigami/qbank/internal/apperror"
	"github.com/lshigami/qbank/internal/dto"
	"github.com/lshigami/qbank/internal/model"
)

// buildQuestion validates a question payload and returns the model to store.
// Interactive writes and every bulk-import record go through here.
func buildQuestion(req dto.QuestionRequest) (*model.Question, error) {
	qType := strings.TrimSpace(req.Type)
	if qType != model.QuestionTypeChoice && qType != model.QuestionTypeFill {
		return nil, apperror.Validation("question type must be %q or %q", model.QuestionTypeChoice, model.QuestionTypeFill)
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperror.Validation("question title is required")
	}

	answer := strings.TrimSpace(req.Answer)
	if answer == "" {
		return nil, apperror.Validation("question answer is required")
	}

	difficulty := strings.TrimSpace(req.Difficulty)
	switch difficulty {
	case "":
		difficulty = model.DifficultyMedium
	case model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard:
	default:
		return nil, apperror.Validation("difficulty must be one of easy, medium, hard")
	}

	tagIDs := dedupeIDs(req.Tags)
	if len(tagIDs) > model.MaxQuestionTags {
		return nil, apperror.Validation("a question can have at most %d tags", model.MaxQuestionTags)
	}

	options := []string{}
	if qType == model.QuestionTypeChoice {
		if len(req.Options) != model.ChoiceOptionCount {
			return nil, apperror.Validation("choice questions must have exactly %d options, got %d", model.ChoiceOptionCount, len(req.Options))
		}
		matched := false
		for _, opt := range req.Options {
			opt = strings.TrimSpace(opt)
			if opt == "" {
				return nil, apperror.Validation("choice options must not be empty")
			}
			if opt == answer {
				matched = true
			}
			options = append(options, opt)
		}
		if !matched {
			return nil, apperror.Validation("choice answer must be one of the options")
		}
	}

	question := &model.Question{
		Type:       qType,
		Title:      title,
		Options:    options,
		Answer:     answer,
		Difficulty: difficulty,
		IsActive:   true,
	}
	question.SetTagIDs(tagIDs)
	return question, nil
}

type tagFields struct {
	name        string
	description string
	color       string
}

func buildTag(req dto.TagRequest) (tagFields, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return tagFields{}, apperror.Validation("tag name is required")
	}
	if utf8.RuneCountInString(name) > model.MaxTagNameLength {
		return tagFields{}, apperror.Validation("tag name must be at most %d characters", model.MaxTagNameLength)
	}
	if utf8.RuneCountInString(req.Description) > model.MaxTagDescLength {
		return tagFields{}, apperror.Validation("tag description must be at most %d characters", model.MaxTagDescLength)
	}
	color := strings.TrimSpace(req.Color)
	if color == "" {
		color = model.DefaultTagColor
	}
	if utf8.RuneCountInString(color) > model.MaxTagColorLength {
		return tagFields{}, apperror.Validation("tag color must be at most %d characters", model.MaxTagColorLength)
	}
	return tagFields{name: name, description: req.Description, color: color}, nil
}

// buildImport validates every record of a batch before anything is written.
func buildImport(req dto.ImportQuestionsRequest) ([]model.Question, error) {
	if len(req.Questions) == 0 {
		return nil, apperror.Validation("no questions to import")
	}
	questions := make([]model.Question, 0, len(req.Questions))
	for i, item := range req.Questions {
		question, err := buildQuestion(item)
		if err != nil {
			return nil, apperror.Validation("question #%d is invalid: %s", i+1, apperror.From(err).Message)
		}
		questions = append(questions, *question)
	}
	return questions, nil
}
