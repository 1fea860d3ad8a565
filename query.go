package xlgrid

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Query is a compiled boolean predicate over grid cells. The expression sees:
//
//	section, row, column  int     logical address
//	cell                  string  spreadsheet name of row/column, e.g. "B3"
//	value                 string  cell text (empty without a ValueProvider)
//	number                float64 value parsed as a number, 0 if it is not one
//	blank                 bool    value is empty after trimming
type Query struct {
	expression string
	program    *vm.Program
}

var queryCache sync.Map // expression → *Query

func queryEnv(addr GridAddress, value string) map[string]any {
	trimmed := strings.TrimSpace(value)
	number, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		number = 0
	}
	return map[string]any{
		"section": addr.Section,
		"row":     addr.Row,
		"column":  addr.Column,
		"cell":    addr.CellName(),
		"value":   value,
		"number":  number,
		"blank":   trimmed == "",
	}
}

// CompileQuery compiles expression. Compiled queries are cached by expression text.
func CompileQuery(expression string) (*Query, error) {
	if cached, ok := queryCache.Load(expression); ok {
		return cached.(*Query), nil
	}
	if strings.TrimSpace(expression) == "" {
		return nil, fmt.Errorf("compile query: empty expression")
	}
	program, err := expr.Compile(expression, expr.Env(queryEnv(GridAddress{}, "")), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile query %q: %w", expression, err)
	}
	q := &Query{expression: expression, program: program}
	queryCache.Store(expression, q)
	return q, nil
}

// String returns the source expression.
func (q *Query) String() string {
	return q.expression
}

// Match evaluates the query for one cell.
func (q *Query) Match(addr GridAddress, value string) (bool, error) {
	out, err := expr.Run(q.program, queryEnv(addr, value))
	if err != nil {
		return false, fmt.Errorf("evaluate query %q at %s: %w", q.expression, addr, err)
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("query %q evaluated to %T, expected bool", q.expression, out)
	}
	return b, nil
}

// FindWhere returns every cell address for which expression holds.
func (g *Grid) FindWhere(expression string) ([]GridAddress, error) {
	q, err := CompileQuery(expression)
	if err != nil {
		return nil, err
	}
	d, err := g.ctl.dims()
	if err != nil {
		return nil, err
	}
	values, _ := g.data.(ValueProvider)

	var found []GridAddress
	for s := 0; s < d.sections; s++ {
		rows := g.ctl.rowCount(s)
		for r := 0; r < rows; r++ {
			for c := 0; c < d.columns; c++ {
				addr := NewAddress(s, r, c)
				var value string
				if values != nil {
					value = values.CellValue(addr)
				}
				ok, err := q.Match(addr, value)
				if err != nil {
					return nil, err
				}
				if ok {
					found = append(found, addr)
				}
			}
		}
	}
	return found, nil
}

// SelectWhere selects every cell matching expression and returns how many matched.
// Matching cells are selected individually: no cascade, no events. Nothing is
// selected when evaluation fails.
func (g *Grid) SelectWhere(expression string) (int, error) {
	found, err := g.FindWhere(expression)
	if err != nil {
		g.log.Warn("query aborted", "expression", expression, "err", err)
		return 0, err
	}
	cols, _ := g.meta.ColumnCount()
	for _, addr := range found {
		g.opts.selector.SelectItem(flatOf(addr, cols), false)
	}
	g.log.Debug("query selected cells", "expression", expression, "count", len(found))
	return len(found), nil
}
