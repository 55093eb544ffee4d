package service

import (
	"errors"
	"strconv"
	"strings"

	"github.com/lshigami/qbank/internal/apperror"
	"github.com/lshigami/qbank/internal/repository"
	"gorm.io/gorm"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// pageOf clamps page/limit to sane values and converts to an offset window.
func pageOf(page, limit int) (int, int, repository.Page) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit, repository.Page{Offset: (page - 1) * limit, Limit: limit}
}

// sortOf maps a client sort key onto a whitelisted column.
func sortOf(key, order string, columns map[string]string, fallback string) repository.Sort {
	column, ok := columns[key]
	if !ok {
		column = columns[fallback]
	}
	return repository.Sort{Field: column, Desc: !strings.EqualFold(order, "asc")}
}

// parseIDList parses a comma-separated list of ids, e.g. "3, 7,12".
func parseIDList(raw string) ([]uint, error) {
	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 32)
		if err != nil || id == 0 {
			return nil, apperror.Validation("invalid tag id %q", part)
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// isDuplicateKey recognizes unique-constraint violations. Dialects that do
// not translate errors are matched on their message.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
