package ast

// SuiteVisitor is called once per suite, outermost first, in source order.
// depth is 0 for the file body.
type SuiteVisitor func(suite []StmtID, depth int)

// WalkSuites visits body and every nested suite in source order.
func WalkSuites(stmts *Stmts, body []StmtID, visit SuiteVisitor) {
	walkSuite(stmts, body, 0, visit)
}

func walkSuite(stmts *Stmts, suite []StmtID, depth int, visit SuiteVisitor) {
	visit(suite, depth)
	for _, id := range suite {
		for _, child := range stmts.Suites(id) {
			walkSuite(stmts, child, depth+1, visit)
		}
	}
}

// WalkStmts calls fn for every statement in source order (pre-order).
// Returning false from fn skips the statement's nested suites.
func WalkStmts(stmts *Stmts, body []StmtID, fn func(id StmtID, depth int) bool) {
	walkStmts(stmts, body, 0, fn)
}

func walkStmts(stmts *Stmts, suite []StmtID, depth int, fn func(StmtID, int) bool) {
	for _, id := range suite {
		if !fn(id, depth) {
			continue
		}
		for _, child := range stmts.Suites(id) {
			walkStmts(stmts, child, depth+1, fn)
		}
	}
}
