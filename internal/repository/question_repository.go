package repository

import (
	"context"
	"strings"

	"github.com/lshigami/qbank/internal/model"
	"gorm.io/gorm"
)

// QuestionFilter narrows a question query. Zero values mean "no filter".
// Every query built from it only sees active questions.
type QuestionFilter struct {
	Types      []string
	TagIDs     []uint
	Difficulty string
	Search     string
}

type Sort struct {
	Field string // already whitelisted column name
	Desc  bool
}

type Page struct {
	Offset int
	Limit  int
}

type QuestionCounts struct {
	Total       int64
	ChoiceCount int64
	FillCount   int64
	EasyCount   int64
	MediumCount int64
	HardCount   int64
}

type TagCount struct {
	TagID uint
	Total int64
}

type QuestionRepository interface {
	Create(ctx context.Context, question *model.Question) error
	CreateBatch(ctx context.Context, questions []model.Question) error
	FindByID(ctx context.Context, id uint) (*model.Question, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.Question, error)
	List(ctx context.Context, filter QuestionFilter, sort Sort, page Page) ([]model.Question, int64, error)
	FindAll(ctx context.Context, filter QuestionFilter) ([]model.Question, error)
	CountPool(ctx context.Context, filter QuestionFilter) (int64, error)
	SamplePool(ctx context.Context, filter QuestionFilter, size int) ([]model.Question, error)
	Update(ctx context.Context, question *model.Question) error
	Deactivate(ctx context.Context, id uint) (int64, error)
	ReplaceAll(ctx context.Context, questions []model.Question) (int64, error)
	Counts(ctx context.Context) (*QuestionCounts, error)
	TopTags(ctx context.Context, limit int) ([]TagCount, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func preloadTags(db *gorm.DB) *gorm.DB {
	return db.Order("question_tags.position ASC")
}

func (r *questionRepository) scoped(ctx context.Context, filter QuestionFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.Question{}).Where("questions.is_active = ?", true)

	if len(filter.Types) > 0 {
		query = query.Where("questions.type IN ?", filter.Types)
	}
	if filter.Difficulty != "" {
		query = query.Where("questions.difficulty = ?", filter.Difficulty)
	}
	if len(filter.TagIDs) > 0 {
		tagged := r.db.Model(&model.QuestionTag{}).Select("question_id").Where("tag_id IN ?", filter.TagIDs)
		query = query.Where("questions.id IN (?)", tagged)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		query = query.Where("LOWER(questions.title) LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(s))+"%")
	}
	return query
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *questionRepository) Create(ctx context.Context, question *model.Question) error {
	// GORM inserts the QuestionTag rows along with the question.
	return r.db.WithContext(ctx).Create(question).Error
}

// CreateBatch inserts all questions in one transaction: either every record
// lands or none does.
func (r *questionRepository) CreateBatch(ctx context.Context, questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&questions).Error
	})
}

func (r *questionRepository) FindByID(ctx context.Context, id uint) (*model.Question, error) {
	var question model.Question
	err := r.db.WithContext(ctx).
		Preload("Tags", preloadTags).
		Where("is_active = ?", true).
		First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// FindByIDs ignores the active flag: scoring must still resolve a question
// that was soft-deleted while a test was in progress.
func (r *questionRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Question, error) {
	var questions []model.Question
	if len(ids) == 0 {
		return questions, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&questions).Error
	return questions, err
}

func (r *questionRepository) List(ctx context.Context, filter QuestionFilter, sort Sort, page Page) ([]model.Question, int64, error) {
	var total int64
	if err := r.scoped(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "questions." + sort.Field
	if sort.Desc {
		order += " DESC"
	} else {
		order += " ASC"
	}

	var questions []model.Question
	err := r.scoped(ctx, filter).
		Preload("Tags", preloadTags).
		Order(order).
		Order("questions.id ASC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&questions).Error
	if err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

func (r *questionRepository) FindAll(ctx context.Context, filter QuestionFilter) ([]model.Question, error) {
	var questions []model.Question
	err := r.scoped(ctx, filter).
		Preload("Tags", preloadTags).
		Order("questions.id ASC").
		Find(&questions).Error
	return questions, err
}

func (r *questionRepository) CountPool(ctx context.Context, filter QuestionFilter) (int64, error) {
	var count int64
	err := r.scoped(ctx, filter).Count(&count).Error
	return count, err
}

// SamplePool draws size questions uniformly at random from the filtered pool
// in a single query. RANDOM() exists in both postgres and sqlite.
func (r *questionRepository) SamplePool(ctx context.Context, filter QuestionFilter, size int) ([]model.Question, error) {
	var questions []model.Question
	err := r.scoped(ctx, filter).
		Preload("Tags", preloadTags).
		Order("RANDOM()").
		Limit(size).
		Find(&questions).Error
	return questions, err
}

// Update saves the question fields and replaces its tag references.
func (r *questionRepository) Update(ctx context.Context, question *model.Question) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Question{ID: question.ID}).
			Select("type", "title", "options", "answer", "difficulty", "updated_at").
			Updates(question).Error
		if err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", question.ID).Delete(&model.QuestionTag{}).Error; err != nil {
			return err
		}
		if len(question.Tags) == 0 {
			return nil
		}
		for i := range question.Tags {
			question.Tags[i].QuestionID = question.ID
		}
		return tx.Create(&question.Tags).Error
	})
}

func (r *questionRepository) Deactivate(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Question{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}

// ReplaceAll soft-deletes every active question and inserts questions in the
// same transaction. It returns the number of deactivated rows.
func (r *questionRepository) ReplaceAll(ctx context.Context, questions []model.Question) (int64, error) {
	var deactivated int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Question{}).
			Where("is_active = ?", true).
			Update("is_active", false)
		if result.Error != nil {
			return result.Error
		}
		deactivated = result.RowsAffected
		if len(questions) == 0 {
			return nil
		}
		return tx.Create(&questions).Error
	})
	return deactivated, err
}

func (r *questionRepository) Counts(ctx context.Context) (*QuestionCounts, error) {
	var counts QuestionCounts
	err := r.db.WithContext(ctx).
		Model(&model.Question{}).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN type = ? THEN 1 ELSE 0 END), 0) AS choice_count,
			COALESCE(SUM(CASE WHEN type = ? THEN 1 ELSE 0 END), 0) AS fill_count,
			COALESCE(SUM(CASE WHEN difficulty = ? THEN 1 ELSE 0 END), 0) AS easy_count,
			COALESCE(SUM(CASE WHEN difficulty = ? THEN 1 ELSE 0 END), 0) AS medium_count,
			COALESCE(SUM(CASE WHEN difficulty = ? THEN 1 ELSE 0 END), 0) AS hard_count`,
			model.QuestionTypeChoice, model.QuestionTypeFill,
			model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard).
		Where("is_active = ?", true).
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return &counts, nil
}

// TopTags counts active questions per referenced tag id, most used first.
// Dangling ids are included; the caller decides how to label them.
func (r *questionRepository) TopTags(ctx context.Context, limit int) ([]TagCount, error) {
	var counts []TagCount
	err := r.db.WithContext(ctx).
		Model(&model.QuestionTag{}).
		Select("question_tags.tag_id AS tag_id, COUNT(*) AS total").
		Joins("JOIN questions ON questions.id = question_tags.question_id").
		Where("questions.is_active = ?", true).
		Group("question_tags.tag_id").
		Order("total DESC").
		Order("question_tags.tag_id ASC").
		Limit(limit).
		Scan(&counts).Error
	return counts, err
}
