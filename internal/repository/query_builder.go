package repository

import (
	"fmt"
	"strings"
)

// whereBuilder 組合 WHERE 條件與對應的位置參數
type whereBuilder struct {
	conds []string
	args  []interface{}
}

// arg appends v and returns its placeholder ($n).
func (w *whereBuilder) arg(v interface{}) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *whereBuilder) where(cond string) {
	w.conds = append(w.conds, cond)
}

// ilikeAny matches one pattern argument against every column.
func (w *whereBuilder) ilikeAny(term string, columns ...string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}
	p := w.arg(containsPattern(term))
	parts := make([]string, 0, len(columns))
	for _, col := range columns {
		parts = append(parts, fmt.Sprintf("%s ILIKE %s", col, p))
	}
	w.where("(" + strings.Join(parts, " OR ") + ")")
}

func (w *whereBuilder) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.conds, " AND ")
}

// limitOffset appends LIMIT/OFFSET; limit 0 means no limit.
func (w *whereBuilder) limitOffset(limit, offset int) string {
	var b strings.Builder
	if limit > 0 {
		b.WriteString(" LIMIT " + w.arg(limit))
	}
	if offset > 0 {
		b.WriteString(" OFFSET " + w.arg(offset))
	}
	return b.String()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike 讓使用者輸入的 % 與 _ 以字面比對
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func containsPattern(term string) string {
	return "%" + escapeLike(term) + "%"
}
