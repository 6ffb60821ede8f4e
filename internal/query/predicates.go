package query

import "todo-store/internal/domain"

// Active matches tasks whose IsActive flag is set to true.
func Active() Expr {
	return Compare{Field: FieldIsActive, Op: OpEq, Value: true}
}

// BothDatesPresent matches tasks with both DateStart and DateEnd set.
func BothDatesPresent() Expr {
	return And{NotNull{Field: FieldDateStart}, NotNull{Field: FieldDateEnd}}
}

// RangeOverlap matches tasks that start inside w, end inside w, or start
// before w and end at or after its start.
func RangeOverlap(w domain.Window) Expr {
	return Disjunction(
		And{
			Compare{Field: FieldDateStart, Op: OpGe, Value: w.Start},
			Compare{Field: FieldDateStart, Op: OpLe, Value: w.End},
		},
		And{
			Compare{Field: FieldDateEnd, Op: OpGe, Value: w.Start},
			Compare{Field: FieldDateEnd, Op: OpLe, Value: w.End},
		},
		And{
			Compare{Field: FieldDateStart, Op: OpLt, Value: w.Start},
			Compare{Field: FieldDateEnd, Op: OpGe, Value: w.Start},
		},
	)
}

// TaskFilter is the fetch filter: active, both dates present, and
// overlapping w.
func TaskFilter(w domain.Window) Expr {
	return Conjunction(Active(), BothDatesPresent(), RangeOverlap(w))
}
