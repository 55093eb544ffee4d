package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestQuestionStatsYAMLKeysMatchJSON(t *testing.T) {
	out, err := yaml.Marshal(QuestionStatsResponse{
		Total:       3,
		ChoiceCount: 2,
		MediumCount: 1,
		TagStats:    []TagCountDTO{{TagID: 4, Name: "algebra", Count: 2}},
	})
	require.NoError(t, err)

	doc := string(out)
	for _, key := range []string{"total:", "choiceCount:", "fillCount:", "easyCount:", "mediumCount:", "hardCount:", "tagStats:", "tagId:", "name:", "count:"} {
		assert.Contains(t, doc, key)
	}
	assert.NotContains(t, doc, "mediumcount")
}

func TestNewPagination(t *testing.T) {
	assert.Equal(t, Pagination{Page: 2, Limit: 10, Total: 21, Pages: 3}, NewPagination(2, 10, 21))
	assert.Equal(t, 0, NewPagination(1, 10, 0).Pages)
}
